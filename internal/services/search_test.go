package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"movie-manager/internal/models"
)

func testMovies(t *testing.T) []*models.Movie {
	t.Helper()
	born := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	nolan := models.NewDirector("Christopher", "Nolan", born, models.Male, nil)
	angelopoulos := models.NewDirector("Θόδωρος", "Αγγελόπουλος", born, models.Male, nil)
	leo := models.NewActor("Leonardo", "DiCaprio", born, models.Male, "White")
	eva := models.NewActor("Εύα", "Κοταμανίδου", born, models.Female, "White")

	mk := func(title string, imdb float64, d *models.Director, a *models.Actor, ratings ...int) *models.Movie {
		m, err := models.NewMovie(title, 2000, "Drama", 120, d, imdb, a)
		require.NoError(t, err)
		for i, r := range ratings {
			require.NoError(t, m.AddUserRating(i+1, r))
		}
		return m
	}
	return []*models.Movie{
		mk("Inception", 8.8, nolan, leo, 8, 9),
		mk("Ο Θίασος", 7.9, angelopoulos, eva, 10),
		mk("Interstellar", 8.6, nolan, leo),
		mk("Tenet", 7.3, nolan, leo, 6),
		mk("Memento", 8.4, nolan, leo),
	}
}

func titles(movies []*models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestFilterMovies(t *testing.T) {
	movies := testMovies(t)

	tests := []struct {
		name   string
		filter MovieFilter
		want   []string
	}{
		{"no filter sorts by user rating", MovieFilter{}, []string{"Ο Θίασος", "Inception", "Tenet", "Interstellar", "Memento"}},
		{"title case-insensitive", MovieFilter{Title: "inter"}, []string{"Interstellar"}},
		{"greek title folding", MovieFilter{Title: "θίασος"}, []string{"Ο Θίασος"}},
		{"greek upper case", MovieFilter{Title: "ΘΊΑΣΟΣ"}, []string{"Ο Θίασος"}},
		{"director", MovieFilter{Director: "NOLAN"}, []string{"Inception", "Tenet", "Interstellar", "Memento"}},
		{"actor", MovieFilter{Actor: "κοταμ"}, []string{"Ο Θίασος"}},
		{"min imdb", MovieFilter{MinIMDb: 8.5}, []string{"Inception", "Interstellar"}},
		{"min user rating", MovieFilter{MinUserRating: 8}, []string{"Ο Θίασος", "Inception"}},
		{"combined", MovieFilter{Director: "nolan", MinIMDb: 8.5, Title: "cep"}, []string{"Inception"}},
		{"no match", MovieFilter{Title: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(FilterMovies(movies, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterMovies() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterSeries(t *testing.T) {
	bb := models.NewSeries("Breaking Bad", "Crime")
	require.NoError(t, bb.AddUserRating(1, 9))
	dark := models.NewSeries("Dark", "Sci-Fi")
	require.NoError(t, dark.AddUserRating(1, 10))
	unrated := models.NewSeries("Dark Matter", "Sci-Fi")
	list := []*models.Series{unrated, bb, dark}

	names := func(list []*models.Series) []string {
		out := make([]string, len(list))
		for i, s := range list {
			out[i] = s.Title
		}
		return out
	}

	if diff := cmp.Diff([]string{"Dark", "Breaking Bad", "Dark Matter"}, names(FilterSeries(list, SeriesFilter{}))); diff != "" {
		t.Errorf("unfiltered (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dark", "Dark Matter"}, names(FilterSeries(list, SeriesFilter{Title: "DARK"}))); diff != "" {
		t.Errorf("title (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dark"}, names(FilterSeries(list, SeriesFilter{MinUserRating: 9.5}))); diff != "" {
		t.Errorf("min rating (-want +got):\n%s", diff)
	}
}
