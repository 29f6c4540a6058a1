package controllers

import (
	"context"
	"errors"
	"fmt"

	"movie-manager/internal/datafile"
	"movie-manager/internal/logger"
	"movie-manager/internal/models"
	"movie-manager/internal/services"
)

// LoginView is what the login controller needs from the login window.
type LoginView interface {
	SetLoginHandler(func(username, email string))
	SetExitHandler(func())
	SetUsers(users []*models.User)
	ShowStatus(msg string, isError bool)
	SetBusy(busy bool)
	ShowError(title string, err error)
}

// LoginController loads users, checks credentials and, after a successful
// login, loads the rest of the catalog before handing over to the main window.
type LoginController struct {
	ctx     context.Context
	auth    *services.AuthService
	catalog *services.CatalogService
	view    LoginView
	logger  logger.Logger

	onLoggedIn func(*services.Session, *datafile.Report)
	onExit     func()
}

// NewLoginController wires view to the services. Logins submitted from the
// view load the catalog under ctx, so cancelling it stops a pending load.
func NewLoginController(ctx context.Context, auth *services.AuthService, catalog *services.CatalogService, view LoginView, log logger.Logger) *LoginController {
	if log == nil {
		log = logger.NoOp{}
	}
	lc := &LoginController{ctx: ctx, auth: auth, catalog: catalog, view: view, logger: log}
	view.SetLoginHandler(func(username, email string) { lc.Login(lc.ctx, username, email) })
	view.SetExitHandler(func() {
		if lc.onExit != nil {
			lc.onExit()
		}
	})
	return lc
}

// OnLoggedIn is called once the catalog is loaded after a successful login
func (lc *LoginController) OnLoggedIn(fn func(*services.Session, *datafile.Report)) {
	lc.onLoggedIn = fn
}

func (lc *LoginController) OnExit(fn func()) {
	lc.onExit = fn
}

// LoadUsers fills the users list. A failure is shown as an error dialog and
// leaves the list empty.
func (lc *LoginController) LoadUsers(ctx context.Context) error {
	users, err := lc.catalog.LoadUsers(ctx)
	if err != nil {
		lc.logger.Error("LoginController", "loading users failed", err, nil)
		lc.view.SetUsers(nil)
		lc.view.ShowError("Error", fmt.Errorf("could not load user data: %w", err))
		return err
	}
	lc.logger.Info("LoginController", "users loaded", map[string]interface{}{"count": len(users)})
	lc.view.SetUsers(users)
	return nil
}

// Login checks the credentials. On success the rest of the catalog is loaded
// on a background goroutine; the returned channel is closed when that is done.
func (lc *LoginController) Login(ctx context.Context, username, email string) <-chan struct{} {
	done := make(chan struct{})

	sess, err := lc.auth.Authenticate(username, email)
	if err != nil {
		close(done)
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			lc.view.ShowStatus("Please fill in both fields!", true)
		case errors.Is(err, services.ErrTooManyAttempts):
			lc.view.ShowStatus("Too many failed attempts, please wait.", true)
		default:
			lc.view.ShowStatus("Invalid login details!", true)
		}
		return done
	}

	lc.view.ShowStatus("Login successful! Loading application...", false)
	lc.view.SetBusy(true)

	go func() {
		defer close(done)
		res := <-lc.catalog.LoadAfterLogin(ctx)
		if res.Err != nil {
			lc.logger.Error("LoginController", "loading catalog failed", res.Err, map[string]interface{}{"user_id": sess.User.ID})
			lc.view.SetBusy(false)
			lc.view.ShowStatus("", false)
			lc.view.ShowError("Error", fmt.Errorf("error while loading data: %w", res.Err))
			return
		}
		lc.logger.Info("LoginController", "catalog loaded", map[string]interface{}{
			"counts":  res.Report.Counts,
			"skipped": len(res.Report.Skipped),
		})
		if lc.onLoggedIn != nil {
			lc.onLoggedIn(sess, res.Report)
		}
	}()
	return done
}
