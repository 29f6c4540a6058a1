package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"movie-manager/internal/models"
	"movie-manager/internal/views/components"
)

var ReviewColumns = []string{"Movie", "User", "Description"}

type reviewsTab struct {
	userLabel  *widget.Label
	movieEntry *widget.SelectEntry
	descEntry  *widget.Entry
	submit     *widget.Button
	table      *components.RecordTable

	onSubmit func(title, description string)
}

func newReviewsTab() *reviewsTab {
	t := &reviewsTab{}
	t.userLabel = widget.NewLabel("")
	t.movieEntry = widget.NewSelectEntry(nil)
	t.movieEntry.SetPlaceHolder("Enter the movie title...")
	t.descEntry = widget.NewMultiLineEntry()
	t.descEntry.SetPlaceHolder("Write your review...")
	t.descEntry.Wrapping = fyne.TextWrapWord
	t.descEntry.SetMinRowsVisible(4)
	t.submit = widget.NewButton("Submit review", func() {
		if t.onSubmit != nil {
			t.onSubmit(t.movieEntry.Text, t.descEntry.Text)
		}
	})
	t.submit.Importance = widget.HighImportance
	t.table = components.NewRecordTable(ReviewColumns, []float32{220, 220, 420})
	return t
}

func (t *reviewsTab) content() fyne.CanvasObject {
	form := widget.NewForm(
		widget.NewFormItem("Movie", t.movieEntry),
		widget.NewFormItem("Description", t.descEntry),
	)
	top := container.NewVBox(
		t.userLabel,
		widget.NewLabelWithStyle("Review a movie", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		container.NewHBox(t.submit),
		widget.NewSeparator(),
	)
	return container.NewBorder(top, nil, nil, nil, t.table.Widget())
}

func (t *reviewsTab) setReviews(reviews []models.Review) {
	rows := make([][]string, len(reviews))
	for i, r := range reviews {
		rows[i] = []string{r.MovieTitle, r.Author(), r.Description}
	}
	t.table.SetRows(rows)
}

func (t *reviewsTab) clear() {
	t.movieEntry.SetText("")
	t.descEntry.SetText("")
}
