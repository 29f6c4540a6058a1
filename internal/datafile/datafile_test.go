package datafile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-manager/internal/models"
)

const usersTxt = `Maria,Papadopoulou,maria,maria@example.gr
Nikos,Georgiou,nikos
Eleni,Dimou,eleni,not-an-email

Giorgos,Ioannou,giorgos,giorgos@example.com
`

const actorsTxt = `Leonardo,DiCaprio,1974-11-11,M,White
Morgan,Freeman,1937-06-01,M,Black
Emma,Stone,1988-11-06,F,White
Bryan,Cranston,1956-03-07,M,White
Broken,Date,11/11/1974,M,White
Short,Line
`

const directorsTxt = `Christopher,Nolan,1970-07-30,M,Inception|Interstellar| |The Dark Knight
Vince,Gilligan,1967-02-10,M,Breaking Bad
Bad,Director,1970-07-30
`

const moviesTxt = `Inception,2010,Sci-Fi,148,Christopher Nolan,8.8,Leonardo DiCaprio,1:9|4:8
The Shawshank Redemption,1994,Drama,142,frank darabont,9.3,Morgan Freeman,1:10|x:3|4:11|4
La La Land,2016,Musical,128,Damien Chazelle,8.0,Emma Stone
Unknown Director,2000,Drama,100,Nobody Here,7.0,Emma Stone,
Unknown Actor,2000,Drama,100,Christopher Nolan,7.0,Nobody Here,
Bad Year,20x0,Drama,100,Christopher Nolan,7.0,Emma Stone,
Bad IMDb,2000,Drama,100,Christopher Nolan,11,Emma Stone,
Too,Short
`

const seriesTxt = `3 (τίτλος, είδος, βαθμολογία χρηστών)
# comment
2
SERIES: Breaking Bad, Crime, 1:10|4:9
SEASON: 1, 2008:
58, Vince Gilligan, 9.0, Bryan Cranston
47, Vince Gilligan, 8.6, Bryan Cranston
SEASON: 2, 2009:
47, Vince Gilligan, 8.7, Nobody Here
SERIES: Dark Matter, Sci-Fi
45, Christopher Nolan, 8.0, Emma Stone
SEASON: x, 2015:
45, Christopher Nolan, 8.0, Emma Stone
SEASON: broken
SERIES: , Drama
`

func writeData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func allFiles() map[string]string {
	return map[string]string{
		UsersFile:     usersTxt,
		ActorsFile:    actorsTxt,
		DirectorsFile: directorsTxt,
		MoviesFile:    moviesTxt,
		SeriesFile:    seriesTxt,
	}
}

func TestParseUsers(t *testing.T) {
	users, skipped, err := ParseUsers(strings.NewReader(usersTxt))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, "maria", users[0].Username)
	assert.Equal(t, 2, users[1].ID)
	assert.Equal(t, "giorgos@example.com", users[1].Email())

	require.Len(t, skipped, 2)
	assert.ErrorIs(t, skipped[0], ErrTooFewFields)
	assert.Equal(t, 2, skipped[0].Line)
	assert.ErrorIs(t, skipped[1], models.ErrInvalidEmail)
}

func TestParseActors(t *testing.T) {
	actors, skipped, err := ParseActors(strings.NewReader(actorsTxt))
	require.NoError(t, err)
	require.Len(t, actors, 4)
	assert.Equal(t, "Emma Stone", actors[2].FullName())
	assert.Equal(t, models.Female, actors[2].Gender)
	assert.Equal(t, 1988, actors[2].BirthDate.Year())

	require.Len(t, skipped, 2)
	assert.ErrorIs(t, skipped[0], ErrMalformedValue)
	assert.ErrorIs(t, skipped[1], ErrTooFewFields)
}

func TestParseDirectors(t *testing.T) {
	directors, skipped, err := ParseDirectors(strings.NewReader(directorsTxt))
	require.NoError(t, err)
	require.Len(t, directors, 2)
	assert.Equal(t, []string{"Inception", "Interstellar", "The Dark Knight"}, directors[0].BestWorks())
	assert.Len(t, skipped, 1)
}

func TestAddFallbackDirectors(t *testing.T) {
	directors, _, err := ParseDirectors(strings.NewReader("Frank,Darabont,1959-01-28,M,The Mist\n"))
	require.NoError(t, err)

	all := AddFallbackDirectors(directors)
	require.Len(t, all, 3)
	// the listed Darabont is kept, not duplicated
	assert.Equal(t, []string{"The Mist"}, all[0].BestWorks())
	_, err = models.FindDirector(all, "Damien Chazelle")
	assert.NoError(t, err)
	_, err = models.FindDirector(all, "Brett Ratner")
	assert.NoError(t, err)
}

func TestParseMovies(t *testing.T) {
	directors, _, _ := ParseDirectors(strings.NewReader(directorsTxt))
	directors = AddFallbackDirectors(directors)
	actors, _, _ := ParseActors(strings.NewReader(actorsTxt))

	movies, skipped, err := ParseMovies(strings.NewReader(moviesTxt), directors, actors)
	require.NoError(t, err)

	titles := make([]string, 0, len(movies))
	for _, m := range movies {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"Inception", "The Shawshank Redemption", "La La Land"}, titles)

	assert.InDelta(t, 8.5, movies[0].AverageUserRating(), 1e-9)
	assert.Equal(t, "Frank Darabont", movies[1].Director.FullName())
	// only 1:10 survives on Shawshank
	assert.Equal(t, models.Ratings{1: 10}, movies[1].UserRatings())
	assert.Zero(t, movies[2].AverageUserRating())

	var unknown, malformed, imdb, short, rating int
	for _, s := range skipped {
		switch {
		case s.Text == "x:3" || s.Text == "4":
			rating++
		case s.Text == "4:11":
			assert.ErrorIs(t, s, models.ErrInvalidUserRating)
			rating++
		case errors.Is(s, ErrUnknownPerson):
			unknown++
		case errors.Is(s, ErrMalformedValue):
			malformed++
		case errors.Is(s, models.ErrInvalidIMDbRating):
			imdb++
		case errors.Is(s, ErrTooFewFields):
			short++
		}
	}
	assert.Equal(t, 3, rating)
	assert.Equal(t, 2, unknown)
	assert.Equal(t, 1, malformed)
	assert.Equal(t, 1, imdb)
	assert.Equal(t, 1, short)
}

func TestParseSeries(t *testing.T) {
	directors, _, _ := ParseDirectors(strings.NewReader(directorsTxt))
	actors, _, _ := ParseActors(strings.NewReader(actorsTxt))

	list, skipped, err := ParseSeries(strings.NewReader(seriesTxt), directors, actors)
	require.NoError(t, err)
	require.Len(t, list, 2)

	bb := list[0]
	assert.Equal(t, "Breaking Bad", bb.Title)
	assert.Equal(t, "Crime", bb.Genre)
	assert.InDelta(t, 9.5, bb.AverageUserRating(), 1e-9)
	require.Len(t, bb.Seasons, 2)
	assert.Equal(t, 2008, bb.Seasons[0].Year)
	assert.Len(t, bb.Seasons[0].Episodes, 2)
	assert.Empty(t, bb.Seasons[1].Episodes)

	dm := list[1]
	require.Len(t, dm.Seasons, 1)
	assert.Equal(t, 1, dm.Seasons[0].Number, "non-numeric season number falls back to position")
	assert.Equal(t, 2015, dm.Seasons[0].Year)
	assert.Len(t, dm.Seasons[0].Episodes, 1)

	var noSeason, unknown, short bool
	for _, s := range skipped {
		noSeason = noSeason || errors.Is(s, ErrNoSeason)
		unknown = unknown || errors.Is(s, ErrUnknownPerson)
		short = short || errors.Is(s, ErrTooFewFields)
	}
	assert.True(t, noSeason)
	assert.True(t, unknown)
	assert.True(t, short)
}

func TestFindBaseDir(t *testing.T) {
	dir := writeData(t, map[string]string{UsersFile: usersTxt})
	empty := t.TempDir()

	got, err := FindBaseDir([]string{empty, dir})
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = FindBaseDir([]string{empty})
	assert.ErrorIs(t, err, ErrNoDataDir)
}

func TestLoaderLoadAll(t *testing.T) {
	dir := writeData(t, allFiles())
	l := NewLoader([]string{t.TempDir(), dir}, nil)

	users, report, err := l.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, report.Counts[UsersFile])

	snap, report, err := l.LoadAll(context.Background(), users)
	require.NoError(t, err)
	assert.Equal(t, dir, report.BaseDir)
	assert.Equal(t, users, snap.Users)
	assert.Len(t, snap.Actors, 4)
	assert.Len(t, snap.Directors, 5)
	assert.Len(t, snap.Movies, 3)
	assert.Len(t, snap.Series, 2)
	assert.Equal(t, 3, report.Counts[MoviesFile])
	assert.NotEmpty(t, report.Skipped)
}

func TestLoaderMissingFile(t *testing.T) {
	files := allFiles()
	delete(files, MoviesFile)
	dir := writeData(t, files)

	_, _, err := NewLoader([]string{dir}, nil).LoadAll(context.Background(), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderCancelled(t *testing.T) {
	dir := writeData(t, allFiles())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewLoader([]string{dir}, nil).LoadAll(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderRetainsUnreadLines(t *testing.T) {
	dir := writeData(t, allFiles())
	_, report, err := NewLoader([]string{dir}, nil).LoadAll(context.Background(), nil)
	require.NoError(t, err)

	want := map[string][]Retained{
		MoviesFile: {
			{Record: 3, Season: -1, Text: "Unknown Director,2000,Drama,100,Nobody Here,7.0,Emma Stone,"},
			{Record: 3, Season: -1, Text: "Unknown Actor,2000,Drama,100,Christopher Nolan,7.0,Nobody Here,"},
			{Record: 3, Season: -1, Text: "Bad Year,20x0,Drama,100,Christopher Nolan,7.0,Emma Stone,"},
			{Record: 3, Season: -1, Text: "Bad IMDb,2000,Drama,100,Christopher Nolan,11,Emma Stone,"},
			{Record: 3, Season: -1, Text: "Too,Short"},
		},
		SeriesFile: {
			{Record: 0, Season: -1, Text: "3 (τίτλος, είδος, βαθμολογία χρηστών)"},
			{Record: 0, Season: -1, Text: "# comment"},
			{Record: 0, Season: -1, Text: "2"},
			{Record: 1, Season: 2, Text: "47, Vince Gilligan, 8.7, Nobody Here"},
			{Record: 2, Season: 0, Text: "45, Christopher Nolan, 8.0, Emma Stone"},
			{Record: 2, Season: 1, Text: "SEASON: broken"},
			{Record: 2, Season: -1, Text: "SERIES: , Drama"},
		},
	}
	if diff := cmp.Diff(want, report.Retained); diff != "" {
		t.Errorf("retained lines mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := writeData(t, allFiles())
	l := NewLoader([]string{dir}, nil)
	snap, report, err := l.LoadAll(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, WriteMovies(dir, snap.Movies, report.Retained[MoviesFile]))
	require.NoError(t, WriteSeries(dir, snap.Series, report.Retained[SeriesFile]))

	again, againReport, err := l.LoadAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, again.Movies, len(snap.Movies))
	require.Len(t, again.Series, len(snap.Series))
	for i, m := range snap.Movies {
		assert.Equal(t, m.Title, again.Movies[i].Title)
		assert.Equal(t, m.UserRatings(), again.Movies[i].UserRatings())
		assert.Equal(t, m.IMDbRating(), again.Movies[i].IMDbRating())
	}
	for i, s := range snap.Series {
		assert.Equal(t, len(s.Seasons), len(again.Series[i].Seasons), s.Title)
		assert.Equal(t, s.EpisodeCount(), again.Series[i].EpisodeCount(), s.Title)
	}
	// every unread line is written back where it was read
	if diff := cmp.Diff(report.Retained, againReport.Retained); diff != "" {
		t.Errorf("retained lines changed by rewrite (-before +after):\n%s", diff)
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, ".*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestEncodeSeriesTruncatedSeasonKeepsLines(t *testing.T) {
	s := models.NewSeries("Dark", "Sci-Fi")
	s.AddSeason(models.NewSeason(1, 2017))
	retained := []Retained{
		{Record: 1, Season: 1, Text: "# after season one"},
		{Record: 1, Season: 3, Text: "# after season three"},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeSeries(&buf, []*models.Series{s}, retained))
	assert.Equal(t, "SERIES: Dark, Sci-Fi\nSEASON: 1, 2017:\n# after season one\n# after season three\n\n", buf.String())
}

func TestWriteFileAtomicKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MoviesFile)
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o640))
	require.NoError(t, os.Chmod(path, 0o640))

	require.NoError(t, WriteFileAtomic(dir, MoviesFile, []byte("new\n")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	require.NoError(t, WriteFileAtomic(dir, SeriesFile, []byte("x\n")))
	info, err = os.Stat(filepath.Join(dir, SeriesFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestEncodeRejectsSeparators(t *testing.T) {
	d := models.NewDirector("A", "B", snapTime(), models.Male, nil)
	a := models.NewActor("C", "D", snapTime(), models.Female, "x")
	m, err := models.NewMovie("Hello, World", 2000, "Drama", 90, d, 7, a)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, EncodeMovies(&buf, []*models.Movie{m}, nil), ErrUnencodable)
}

func snapTime() time.Time { return time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC) }
