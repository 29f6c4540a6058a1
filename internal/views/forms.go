package views

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MovieForm holds the raw add-movie form values. Numbers are parsed by the
// controller so that bad input ends up in the same error dialog as every
// other validation failure.
type MovieForm struct {
	Title    string
	Year     string
	Genre    string
	Duration string
	Director string
	Actor    string
	IMDb     string
}

type SeriesForm struct {
	Title    string
	Year     string
	Genre    string
	Seasons  string
	Director string
	Actor    string
}

var (
	defaultYear     = strconv.Itoa(2024)
	defaultDuration = strconv.Itoa(120)
	defaultIMDb     = "7.0"
	defaultSeasons  = "1"
)

type movieFormTab struct {
	title    *widget.Entry
	year     *widget.Entry
	genre    *widget.SelectEntry
	duration *widget.Entry
	director *widget.Select
	actor    *widget.Select
	imdb     *widget.Entry
	hint     *widget.Label

	onAdd func(MovieForm)
}

func newMovieFormTab() *movieFormTab {
	t := &movieFormTab{
		title:    widget.NewEntry(),
		year:     widget.NewEntry(),
		genre:    widget.NewSelectEntry(nil),
		duration: widget.NewEntry(),
		director: widget.NewSelect(nil, nil),
		actor:    widget.NewSelect(nil, nil),
		imdb:     widget.NewEntry(),
		hint:     widget.NewLabel(""),
	}
	t.title.SetPlaceHolder("Enter the movie title...")
	t.genre.SetPlaceHolder("Choose a genre")
	t.director.PlaceHolder = "Choose a director"
	t.actor.PlaceHolder = "Choose the lead actor"
	t.setThreshold(7.5)
	t.clear()
	return t
}

func (t *movieFormTab) setThreshold(v float64) {
	t.hint.SetText(fmt.Sprintf("An IMDb rating above %.1f adds the title to the director's best works", v))
}

func (t *movieFormTab) content() fyne.CanvasObject {
	form := widget.NewForm(
		widget.NewFormItem("Title", t.title),
		widget.NewFormItem("Year", t.year),
		widget.NewFormItem("Duration (minutes)", t.duration),
		widget.NewFormItem("Genre", t.genre),
		widget.NewFormItem("Director", t.director),
		widget.NewFormItem("Lead actor", t.actor),
		widget.NewFormItem("IMDb rating", t.imdb),
	)
	add := widget.NewButton("Add movie", func() {
		if t.onAdd != nil {
			t.onAdd(t.values())
		}
	})
	add.Importance = widget.HighImportance
	return container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Add a new movie", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		t.hint,
		container.NewHBox(add, widget.NewButton("Clear", t.clear)),
	))
}

func (t *movieFormTab) values() MovieForm {
	return MovieForm{
		Title:    t.title.Text,
		Year:     t.year.Text,
		Genre:    t.genre.Text,
		Duration: t.duration.Text,
		Director: t.director.Selected,
		Actor:    t.actor.Selected,
		IMDb:     t.imdb.Text,
	}
}

func (t *movieFormTab) clear() {
	t.title.SetText("")
	t.year.SetText(defaultYear)
	t.genre.SetText("")
	t.duration.SetText(defaultDuration)
	t.director.ClearSelected()
	t.actor.ClearSelected()
	t.imdb.SetText(defaultIMDb)
}

type seriesFormTab struct {
	title    *widget.Entry
	year     *widget.Entry
	genre    *widget.SelectEntry
	seasons  *widget.Entry
	director *widget.Select
	actor    *widget.Select

	onAdd func(SeriesForm)
}

func newSeriesFormTab() *seriesFormTab {
	t := &seriesFormTab{
		title:    widget.NewEntry(),
		year:     widget.NewEntry(),
		genre:    widget.NewSelectEntry(nil),
		seasons:  widget.NewEntry(),
		director: widget.NewSelect(nil, nil),
		actor:    widget.NewSelect(nil, nil),
	}
	t.title.SetPlaceHolder("Enter the series title...")
	t.genre.SetPlaceHolder("Choose a genre")
	t.director.PlaceHolder = "Choose a director"
	t.actor.PlaceHolder = "Choose the lead actor"
	t.clear()
	return t
}

func (t *seriesFormTab) content() fyne.CanvasObject {
	form := widget.NewForm(
		widget.NewFormItem("Title", t.title),
		widget.NewFormItem("Year", t.year),
		widget.NewFormItem("Seasons", t.seasons),
		widget.NewFormItem("Genre", t.genre),
		widget.NewFormItem("Director", t.director),
		widget.NewFormItem("Lead actor", t.actor),
	)
	add := widget.NewButton("Add series", func() {
		if t.onAdd != nil {
			t.onAdd(t.values())
		}
	})
	add.Importance = widget.HighImportance
	return container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Add a new series", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewHBox(add, widget.NewButton("Clear", t.clear)),
	))
}

func (t *seriesFormTab) values() SeriesForm {
	return SeriesForm{
		Title:    t.title.Text,
		Year:     t.year.Text,
		Genre:    t.genre.Text,
		Seasons:  t.seasons.Text,
		Director: t.director.Selected,
		Actor:    t.actor.Selected,
	}
}

func (t *seriesFormTab) clear() {
	t.title.SetText("")
	t.year.SetText(defaultYear)
	t.genre.SetText("")
	t.seasons.SetText(defaultSeasons)
	t.director.ClearSelected()
	t.actor.ClearSelected()
}
