package models

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidIMDbRating  = errors.New("imdb rating must be between 1.0 and 10.0")
	ErrInvalidUserRating  = errors.New("user rating must be between 1 and 10")
	ErrInvalidGender      = errors.New("gender must not be empty")
	ErrNotFound           = errors.New("not found")
	ErrInvalidSeasonCount = errors.New("season count must be at least 1")
)
