package views

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"movie-manager/internal/models"
	"movie-manager/internal/services"
	"movie-manager/internal/views/components"
)

var MovieColumns = []string{"Title", "Director", "Lead Actor", "IMDb", "Avg User Rating", "Genre", "Year"}

// moviesTab is the search form plus the movie table.
type moviesTab struct {
	titleEntry    *widget.Entry
	actorEntry    *widget.Entry
	directorEntry *widget.Entry
	minIMDb       *widget.Slider
	minIMDbLabel  *widget.Label
	minUser       *widget.Slider
	minUserLabel  *widget.Label
	table         *components.RecordTable

	// clearing is set while Clear resets the widgets, so the handler runs once
	clearing bool
	onFilter func(services.MovieFilter)
}

func newMoviesTab() *moviesTab {
	t := &moviesTab{}

	changed := func(string) { t.fire() }
	t.titleEntry = widget.NewEntry()
	t.titleEntry.SetPlaceHolder("Search title...")
	t.titleEntry.OnChanged = changed
	t.actorEntry = widget.NewEntry()
	t.actorEntry.SetPlaceHolder("Search actor...")
	t.actorEntry.OnChanged = changed
	t.directorEntry = widget.NewEntry()
	t.directorEntry.SetPlaceHolder("Search director...")
	t.directorEntry.OnChanged = changed

	t.minIMDbLabel = widget.NewLabel(ratingLabel(0))
	t.minIMDb = newRatingSlider(func(v float64) {
		t.minIMDbLabel.SetText(ratingLabel(v))
		t.fire()
	})
	t.minUserLabel = widget.NewLabel(ratingLabel(0))
	t.minUser = newRatingSlider(func(v float64) {
		t.minUserLabel.SetText(ratingLabel(v))
		t.fire()
	})

	t.table = components.NewRecordTable(MovieColumns, []float32{240, 170, 170, 60, 130, 100, 60})
	return t
}

func newRatingSlider(onChanged func(float64)) *widget.Slider {
	s := widget.NewSlider(0, 10)
	s.Step = 0.1
	s.OnChanged = onChanged
	return s
}

func ratingLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func (t *moviesTab) content() fyne.CanvasObject {
	form := container.NewGridWithColumns(3,
		widget.NewForm(widget.NewFormItem("Title", t.titleEntry)),
		widget.NewForm(widget.NewFormItem("Actor", t.actorEntry)),
		widget.NewForm(widget.NewFormItem("Director", t.directorEntry)),
	)
	sliders := container.NewGridWithColumns(2,
		widget.NewForm(widget.NewFormItem("Min IMDb", container.NewBorder(nil, nil, nil, t.minIMDbLabel, t.minIMDb))),
		widget.NewForm(widget.NewFormItem("Min user rating", container.NewBorder(nil, nil, nil, t.minUserLabel, t.minUser))),
	)
	clear := widget.NewButton("Clear filters", t.clear)

	top := container.NewVBox(
		widget.NewLabelWithStyle("Search movies", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewBorder(nil, nil, nil, clear, sliders),
	)
	return container.NewBorder(top, nil, nil, nil, t.table.Widget())
}

func (t *moviesTab) filter() services.MovieFilter {
	return services.MovieFilter{
		Title:         t.titleEntry.Text,
		Actor:         t.actorEntry.Text,
		Director:      t.directorEntry.Text,
		MinIMDb:       t.minIMDb.Value,
		MinUserRating: t.minUser.Value,
	}
}

func (t *moviesTab) fire() {
	if t.clearing || t.onFilter == nil {
		return
	}
	t.onFilter(t.filter())
}

func (t *moviesTab) clear() {
	t.clearing = true
	t.titleEntry.SetText("")
	t.actorEntry.SetText("")
	t.directorEntry.SetText("")
	t.minIMDb.SetValue(0)
	t.minUser.SetValue(0)
	t.minIMDbLabel.SetText(ratingLabel(0))
	t.minUserLabel.SetText(ratingLabel(0))
	t.clearing = false
	t.fire()
}

func (t *moviesTab) setMovies(movies []*models.Movie) {
	rows := make([][]string, len(movies))
	for i, m := range movies {
		rows[i] = []string{
			m.Title,
			m.Director.FullName(),
			m.LeadActor.FullName(),
			fmt.Sprintf("%.1f", m.IMDbRating()),
			fmt.Sprintf("%.2f", m.AverageUserRating()),
			m.Genre,
			strconv.Itoa(m.Year),
		}
	}
	t.table.SetRows(rows)
}
