package models

import (
	"fmt"
	"time"
)

// Review is a free-text review of a movie written by a logged-in user.
type Review struct {
	MovieTitle  string
	UserName    string
	LoginID     int
	Description string
	CreatedAt   time.Time
}

// Author formats the reviewer the way the reviews table shows it.
func (r Review) Author() string {
	return fmt.Sprintf("%s (ID: %d)", r.UserName, r.LoginID)
}
