package models

import (
	"fmt"
	"sync/atomic"
)

var (
	seriesSeq  atomic.Int64
	episodeSeq atomic.Int64
)

type Episode struct {
	ID        int64
	Duration  int
	Director  *Director
	LeadActor *Actor
	imdb      float64
}

func NewEpisode(duration int, director *Director, imdb float64, lead *Actor) (*Episode, error) {
	if err := validIMDb(imdb); err != nil {
		return nil, err
	}
	return &Episode{
		ID:        episodeSeq.Add(1),
		Duration:  duration,
		Director:  director,
		LeadActor: lead,
		imdb:      imdb,
	}, nil
}

func (e *Episode) IMDbRating() float64 { return e.imdb }

type Season struct {
	Number   int
	Year     int
	Episodes []*Episode
}

func NewSeason(number, year int) *Season {
	return &Season{Number: number, Year: year}
}

func (s *Season) AddEpisode(e *Episode) {
	s.Episodes = append(s.Episodes, e)
}

type Series struct {
	ID      int64
	Title   string
	Genre   string
	Seasons []*Season
	ratings Ratings
}

func NewSeries(title, genre string) *Series {
	return &Series{
		ID:      seriesSeq.Add(1),
		Title:   title,
		Genre:   genre,
		ratings: make(Ratings),
	}
}

func (s *Series) AddSeason(season *Season) {
	s.Seasons = append(s.Seasons, season)
}

// LastSeason returns the most recently added season, or nil.
func (s *Series) LastSeason() *Season {
	if len(s.Seasons) == 0 {
		return nil
	}
	return s.Seasons[len(s.Seasons)-1]
}

// SetSeasonCount grows the season list with empty seasons numbered after the
// current count, or truncates trailing seasons. New seasons take year.
func (s *Series) SetSeasonCount(n, year int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeasonCount, n)
	}
	for i := len(s.Seasons) + 1; i <= n; i++ {
		s.Seasons = append(s.Seasons, NewSeason(i, year))
	}
	if n < len(s.Seasons) {
		for i := n; i < len(s.Seasons); i++ {
			s.Seasons[i] = nil
		}
		s.Seasons = s.Seasons[:n]
	}
	return nil
}

func (s *Series) AddUserRating(userID, rating int) error {
	if err := validUserRating(rating); err != nil {
		return err
	}
	s.ratings[userID] = rating
	return nil
}

func (s *Series) UserRatings() Ratings { return s.ratings.clone() }

func (s *Series) AverageUserRating() float64 { return s.ratings.Average() }

func (s *Series) EpisodeCount() int {
	n := 0
	for _, season := range s.Seasons {
		n += len(season.Episodes)
	}
	return n
}
