package models

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)

var (
	actorSeq    atomic.Int64
	directorSeq atomic.Int64
)

// Gender is the single-letter code stored in the data files (M or F).
type Gender rune

const (
	Male   Gender = 'M'
	Female Gender = 'F'
)

// ParseGender takes the first letter of s, upper-cased.
func ParseGender(s string) (Gender, error) {
	s = strings.TrimSpace(s)
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, ErrInvalidGender
	}
	return Gender(unicode.ToUpper(r)), nil
}

func (g Gender) String() string { return string(rune(g)) }

type User struct {
	ID        int
	FirstName string
	LastName  string
	Username  string
	email     string
}

func NewUser(first, last, username, email string) (*User, error) {
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return &User{FirstName: first, LastName: last, Username: username, email: email}, nil
}

func (u *User) Email() string { return u.email }

func (u *User) SetEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	u.email = email
	return nil
}

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

// VerifyCredentials reports whether both username and email match exactly.
func (u *User) VerifyCredentials(username, email string) bool {
	return u.Username == username && u.email == email
}

type Actor struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	Gender    Gender
	Race      string
}

func NewActor(first, last string, birth time.Time, gender Gender, race string) *Actor {
	return &Actor{
		ID:        actorSeq.Add(1),
		FirstName: first,
		LastName:  last,
		BirthDate: birth,
		Gender:    gender,
		Race:      race,
	}
}

func (a *Actor) FullName() string { return a.FirstName + " " + a.LastName }

type Director struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	Gender    Gender
	bestWorks []string
}

func NewDirector(first, last string, birth time.Time, gender Gender, bestWorks []string) *Director {
	return &Director{
		ID:        directorSeq.Add(1),
		FirstName: first,
		LastName:  last,
		BirthDate: birth,
		Gender:    gender,
		bestWorks: append([]string(nil), bestWorks...),
	}
}

func (d *Director) FullName() string { return d.FirstName + " " + d.LastName }

// BestWorks returns a copy of the director's best works, in insertion order.
func (d *Director) BestWorks() []string {
	return append([]string(nil), d.bestWorks...)
}

// AddBestWork appends title unless it is already listed. It reports whether
// the list changed.
func (d *Director) AddBestWork(title string) bool {
	for _, w := range d.bestWorks {
		if w == title {
			return false
		}
	}
	d.bestWorks = append(d.bestWorks, title)
	return true
}

// NameKey normalises a person's full name or a title for case-insensitive lookups.
func NameKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
