package views

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-manager/internal/models"
	"movie-manager/internal/services"
)

func TestLoginViewUsers(t *testing.T) {
	a := test.NewTempApp(t)
	lv := NewLoginView(a.NewWindow("login"))

	lv.SetUsers(nil)
	assert.Equal(t, []string{NoUsersText}, lv.UserLines())

	u, err := models.NewUser("Maria", "Papadopoulou", "maria", "maria@example.gr")
	require.NoError(t, err)
	lv.SetUsers([]*models.User{u})
	assert.Equal(t, []string{"maria (maria@example.gr)"}, lv.UserLines())
}

func TestLoginViewSubmit(t *testing.T) {
	a := test.NewTempApp(t)
	lv := NewLoginView(a.NewWindow("login"))

	var gotUser, gotEmail string
	calls := 0
	lv.SetLoginHandler(func(u, e string) {
		gotUser, gotEmail = u, e
		calls++
	})

	test.Type(lv.usernameEntry, "maria")
	test.Type(lv.emailEntry, "maria@example.gr")
	test.Tap(lv.loginButton)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "maria", gotUser)
	assert.Equal(t, "maria@example.gr", gotEmail)

	lv.emailEntry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, 2, calls, "Enter submits")

	lv.SetBusy(true)
	test.Tap(lv.loginButton)
	assert.Equal(t, 2, calls, "busy form ignores submits")
	assert.True(t, lv.usernameEntry.Disabled())
	lv.SetBusy(false)
	assert.False(t, lv.loginButton.Disabled())
}

func TestLoginViewStatus(t *testing.T) {
	a := test.NewTempApp(t)
	lv := NewLoginView(a.NewWindow("login"))

	lv.ShowStatus("Invalid login details!", true)
	msg, isErr := lv.Status()
	assert.Equal(t, "Invalid login details!", msg)
	assert.True(t, isErr)

	lv.ShowStatus("Login successful!", false)
	_, isErr = lv.Status()
	assert.False(t, isErr)
}

func sampleMovies(t *testing.T) []*models.Movie {
	t.Helper()
	born := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	d := models.NewDirector("Christopher", "Nolan", born, models.Male, nil)
	a := models.NewActor("Leonardo", "DiCaprio", born, models.Male, "White")
	m, err := models.NewMovie("Inception", 2010, "Sci-Fi", 148, d, 8.8, a)
	require.NoError(t, err)
	require.NoError(t, m.AddUserRating(1, 9))
	require.NoError(t, m.AddUserRating(2, 8))
	return []*models.Movie{m}
}

func TestMainViewMovies(t *testing.T) {
	a := test.NewTempApp(t)
	mv := NewMainView(a.NewWindow("main"))

	mv.SetMovies(sampleMovies(t))
	tbl := mv.movies.table
	require.Equal(t, 1, tbl.Rows())
	want := []string{"Inception", "Christopher Nolan", "Leonardo DiCaprio", "8.8", "8.50", "Sci-Fi", "2010"}
	for col, w := range want {
		assert.Equal(t, w, tbl.Cell(0, col), MovieColumns[col])
	}

	var filters []services.MovieFilter
	mv.SetMovieFilterHandler(func(f services.MovieFilter) { filters = append(filters, f) })

	test.Type(mv.movies.titleEntry, "in")
	require.NotEmpty(t, filters)
	assert.Equal(t, "in", filters[len(filters)-1].Title)

	mv.movies.minIMDb.SetValue(8)
	assert.InDelta(t, 8.0, mv.MovieFilter().MinIMDb, 0.001)

	n := len(filters)
	mv.movies.clear()
	assert.Len(t, filters, n+1, "clear fires once")
	assert.Equal(t, services.MovieFilter{}, filters[len(filters)-1])
	assert.Equal(t, services.MovieFilter{}, mv.MovieFilter())
}

func TestMainViewSeasonEditor(t *testing.T) {
	a := test.NewTempApp(t)
	mv := NewMainView(a.NewWindow("main"))

	s := models.NewSeries("Dark", "Sci-Fi")
	s.AddSeason(models.NewSeason(1, 2017))
	s.AddSeason(models.NewSeason(2, 2019))
	mv.SetSeries([]*models.Series{s})
	assert.Equal(t, "2", mv.series.table.Cell(0, 2))
	assert.True(t, mv.series.updateButton.Disabled())

	var gotID int64
	var gotCount string
	mv.SetSeasonCountHandler(func(id int64, count string) { gotID, gotCount = id, count })

	mv.series.selectRow(0)
	assert.Equal(t, "Dark", mv.series.selectedLabel.Text)
	assert.Equal(t, "2", mv.series.seasonsEntry.Text)
	mv.series.seasonsEntry.SetText("3")
	test.Tap(mv.series.updateButton)
	assert.Equal(t, s.ID, gotID)
	assert.Equal(t, "3", gotCount)

	mv.SetSeries(nil)
	assert.Equal(t, noSeriesSelected, mv.series.selectedLabel.Text)
	assert.True(t, mv.series.updateButton.Disabled())
}

func TestMainViewMovieForm(t *testing.T) {
	a := test.NewTempApp(t)
	mv := NewMainView(a.NewWindow("main"))
	mv.SetPeople([]string{"Christopher Nolan"}, []string{"Leonardo DiCaprio"})
	mv.SetGenres([]string{"Drama", "Sci-Fi"})

	assert.Equal(t, MovieForm{Year: "2024", Duration: "120", IMDb: "7.0"}, mv.movieForm.values())

	var got MovieForm
	mv.SetAddMovieHandler(func(f MovieForm) { got = f })
	want := MovieForm{
		Title: "Tenet", Year: "2020", Genre: "Sci-Fi", Duration: "150",
		Director: "Christopher Nolan", Actor: "Leonardo DiCaprio", IMDb: "7.3",
	}
	fillMovieForm(mv.movieForm, want)
	mv.movieForm.onAdd(mv.movieForm.values())
	assert.Equal(t, want, got)

	mv.ClearMovieForm()
	assert.Equal(t, MovieForm{Year: "2024", Duration: "120", IMDb: "7.0"}, mv.movieForm.values())
}

func TestMainViewSeriesForm(t *testing.T) {
	a := test.NewTempApp(t)
	mv := NewMainView(a.NewWindow("main"))
	mv.SetPeople([]string{"Vince Gilligan"}, []string{"Bryan Cranston"})

	assert.Equal(t, SeriesForm{Year: "2024", Seasons: "1"}, mv.seriesForm.values())
	fillSeriesForm(mv.seriesForm, SeriesForm{Title: "Saul", Year: "2015", Genre: "Crime", Seasons: "6", Director: "Vince Gilligan", Actor: "Bryan Cranston"})
	assert.Equal(t, "Vince Gilligan", mv.seriesForm.values().Director)
	mv.ClearSeriesForm()
	assert.Equal(t, SeriesForm{Year: "2024", Seasons: "1"}, mv.seriesForm.values())
}

func TestMainViewSessionAndReviews(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("main")
	mv := NewMainView(w)

	mv.SetSession("Maria Papadopoulou", 42)
	assert.Equal(t, "Movie & Series Manager - Welcome Maria Papadopoulou (Login ID: 42)", w.Title())
	assert.Equal(t, "User: Maria Papadopoulou (ID: 42)", mv.reviews.userLabel.Text)

	var title, desc string
	mv.SetReviewHandler(func(t, d string) { title, desc = t, d })
	mv.reviews.movieEntry.SetText("Inception")
	test.Type(mv.reviews.descEntry, "Great")
	test.Tap(mv.reviews.submit)
	assert.Equal(t, "Inception", title)
	assert.Equal(t, "Great", desc)

	mv.SetReviews([]models.Review{{MovieTitle: "Inception", UserName: "Maria Papadopoulou", LoginID: 42, Description: "Great"}})
	assert.Equal(t, "Maria Papadopoulou (ID: 42)", mv.reviews.table.Cell(0, 1))

	mv.ClearReviewForm()
	assert.Empty(t, mv.reviews.movieEntry.Text)
	assert.Empty(t, mv.reviews.descEntry.Text)
}

func TestMainViewCounts(t *testing.T) {
	a := test.NewTempApp(t)
	mv := NewMainView(a.NewWindow("main"))
	mv.SetCounts(models.CatalogStats{Movies: 3, Series: 2, Directors: 4, Actors: 5, Reviews: 1})
	assert.Equal(t, "Movies: 3 | Series: 2 | Directors: 4 | Actors: 5 | Reviews: 1", mv.statusBar.GetCounts())
	mv.UpdateStatus("Ready to go")
	assert.Equal(t, "Ready to go", mv.statusBar.GetStatus())
}

func fillMovieForm(t *movieFormTab, f MovieForm) {
	t.title.SetText(f.Title)
	t.year.SetText(f.Year)
	t.genre.SetText(f.Genre)
	t.duration.SetText(f.Duration)
	t.director.SetSelected(f.Director)
	t.actor.SetSelected(f.Actor)
	t.imdb.SetText(f.IMDb)
}

func fillSeriesForm(t *seriesFormTab, f SeriesForm) {
	t.title.SetText(f.Title)
	t.year.SetText(f.Year)
	t.genre.SetText(f.Genre)
	t.seasons.SetText(f.Seasons)
	t.director.SetSelected(f.Director)
	t.actor.SetSelected(f.Actor)
}
