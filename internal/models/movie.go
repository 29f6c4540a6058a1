package models

import (
	"fmt"
	"sort"
	"sync/atomic"
)

var movieSeq atomic.Int64

// Ratings maps a user id to the rating (1..10) that user gave.
type Ratings map[int]int

func (r Ratings) Average() float64 {
	if len(r) == 0 {
		return 0
	}
	sum := 0
	for _, v := range r {
		sum += v
	}
	return float64(sum) / float64(len(r))
}

// UserIDs returns the rating user ids in ascending order.
func (r Ratings) UserIDs() []int {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (r Ratings) clone() Ratings {
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func validUserRating(rating int) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidUserRating, rating)
	}
	return nil
}

// validIMDb is written so NaN fails the range check.
func validIMDb(rating float64) error {
	if !(rating >= 1.0 && rating <= 10.0) {
		return fmt.Errorf("%w: got %.1f", ErrInvalidIMDbRating, rating)
	}
	return nil
}

type Movie struct {
	ID        int64
	Title     string
	Year      int
	Genre     string
	Duration  int
	Director  *Director
	LeadActor *Actor
	imdb      float64
	ratings   Ratings
}

func NewMovie(title string, year int, genre string, duration int, director *Director, imdb float64, lead *Actor) (*Movie, error) {
	if err := validIMDb(imdb); err != nil {
		return nil, err
	}
	return &Movie{
		ID:        movieSeq.Add(1),
		Title:     title,
		Year:      year,
		Genre:     genre,
		Duration:  duration,
		Director:  director,
		LeadActor: lead,
		imdb:      imdb,
		ratings:   make(Ratings),
	}, nil
}

func (m *Movie) IMDbRating() float64 { return m.imdb }

func (m *Movie) SetIMDbRating(rating float64) error {
	if err := validIMDb(rating); err != nil {
		return err
	}
	m.imdb = rating
	return nil
}

// AddUserRating records or replaces the rating of userID.
func (m *Movie) AddUserRating(userID, rating int) error {
	if err := validUserRating(rating); err != nil {
		return err
	}
	m.ratings[userID] = rating
	return nil
}

func (m *Movie) UserRatings() Ratings { return m.ratings.clone() }

func (m *Movie) AverageUserRating() float64 { return m.ratings.Average() }

func (m *Movie) String() string {
	return fmt.Sprintf("Movie{id=%d, title=%q, year=%d, genre=%q, duration=%d, director=%q, imdb=%.1f, lead=%q, avg_user_rating=%.2f}",
		m.ID, m.Title, m.Year, m.Genre, m.Duration, m.Director.FullName(), m.imdb, m.LeadActor.FullName(), m.AverageUserRating())
}
