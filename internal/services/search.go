package services

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"movie-manager/internal/models"
)

// MovieFilter narrows the movie table. Empty strings and zero minimums match
// everything.
type MovieFilter struct {
	Title         string
	Actor         string
	Director      string
	MinIMDb       float64
	MinUserRating float64
}

type SeriesFilter struct {
	Title         string
	MinUserRating float64
}

// matcher does case-insensitive substring matching with Unicode case folding,
// so Greek titles match regardless of case.
type matcher struct {
	caser cases.Caser
}

func newMatcher() *matcher {
	return &matcher{caser: cases.Fold()}
}

func (m *matcher) fold(s string) string {
	return m.caser.String(strings.TrimSpace(s))
}

// contains reports whether haystack contains needle; an empty needle matches.
func (m *matcher) contains(haystack, needle string) bool {
	needle = m.fold(needle)
	return needle == "" || strings.Contains(m.fold(haystack), needle)
}

// FilterMovies applies f and orders the result by average user rating,
// highest first. Ties keep their input order.
func FilterMovies(movies []*models.Movie, f MovieFilter) []*models.Movie {
	m := newMatcher()
	out := make([]*models.Movie, 0, len(movies))
	for _, mv := range movies {
		if !m.contains(mv.Title, f.Title) ||
			!m.contains(mv.LeadActor.FullName(), f.Actor) ||
			!m.contains(mv.Director.FullName(), f.Director) ||
			mv.IMDbRating() < f.MinIMDb ||
			mv.AverageUserRating() < f.MinUserRating {
			continue
		}
		out = append(out, mv)
	}
	slices.SortStableFunc(out, func(a, b *models.Movie) int {
		return cmp.Compare(b.AverageUserRating(), a.AverageUserRating())
	})
	return out
}

func FilterSeries(list []*models.Series, f SeriesFilter) []*models.Series {
	m := newMatcher()
	out := make([]*models.Series, 0, len(list))
	for _, s := range list {
		if !m.contains(s.Title, f.Title) || s.AverageUserRating() < f.MinUserRating {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b *models.Series) int {
		return cmp.Compare(b.AverageUserRating(), a.AverageUserRating())
	})
	return out
}
