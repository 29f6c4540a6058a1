package services

import (
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"movie-manager/internal/logger"
	"movie-manager/internal/models"
)

// MaxLoginID bounds the random login id handed out per session.
const MaxLoginID = 100

// Session is the logged-in user plus the login id shown in the window title
// and attached to reviews.
type Session struct {
	User      *models.User
	LoginID   int
	StartedAt time.Time
}

func (s *Session) DisplayName() string {
	return s.User.FullName()
}

// AuthService checks credentials against the loaded users.
type AuthService struct {
	catalog *models.Catalog
	limiter *rate.Limiter
	logger  logger.Logger
	loginID func() int
	now     func() time.Time
}

type AuthOption func(*AuthService)

// WithLimiter replaces the failed-attempt limiter.
func WithLimiter(l *rate.Limiter) AuthOption {
	return func(s *AuthService) { s.limiter = l }
}

// WithLoginIDSource replaces the random login id generator.
func WithLoginIDSource(fn func() int) AuthOption {
	return func(s *AuthService) { s.loginID = fn }
}

func NewAuthService(catalog *models.Catalog, log logger.Logger, opts ...AuthOption) *AuthService {
	if log == nil {
		log = logger.NoOp{}
	}
	s := &AuthService{
		catalog: catalog,
		// five failures in a burst, then one more every two seconds
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
		logger:  log,
		loginID: func() int { return rand.IntN(MaxLoginID) },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate returns a session for the first user whose username and email
// both match exactly after trimming.
func (s *AuthService) Authenticate(username, email string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, ErrMissingCredentials
	}
	if s.limiter.Tokens() < 1 {
		s.logger.Warning("Auth", "login throttled", map[string]interface{}{"username": username})
		return nil, ErrTooManyAttempts
	}

	for _, u := range s.catalog.Users() {
		if u.VerifyCredentials(username, email) {
			sess := &Session{User: u, LoginID: s.loginID(), StartedAt: s.now()}
			s.logger.Info("Auth", "login succeeded", map[string]interface{}{
				"user_id":  u.ID,
				"login_id": sess.LoginID,
			})
			return sess, nil
		}
	}

	s.limiter.Allow()
	s.logger.Warning("Auth", "login failed", map[string]interface{}{"username": username})
	return nil, ErrInvalidCredentials
}
