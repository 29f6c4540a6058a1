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

var SeriesColumns = []string{"Title", "Genre", "Seasons", "Avg User Rating"}

const noSeriesSelected = "Select a series to edit its seasons"

// seriesTab is the series search, the table and the season count editor.
type seriesTab struct {
	titleEntry    *widget.Entry
	minUser       *widget.Slider
	minUserLabel  *widget.Label
	table         *components.RecordTable
	selectedLabel *widget.Label
	seasonsEntry  *widget.Entry
	updateButton  *widget.Button

	ids      []int64
	selected int64
	clearing bool

	onFilter  func(services.SeriesFilter)
	onSeasons func(seriesID int64, count string)
}

func newSeriesTab() *seriesTab {
	t := &seriesTab{}

	t.titleEntry = widget.NewEntry()
	t.titleEntry.SetPlaceHolder("Search series title...")
	t.titleEntry.OnChanged = func(string) { t.fire() }
	t.minUserLabel = widget.NewLabel(ratingLabel(0))
	t.minUser = newRatingSlider(func(v float64) {
		t.minUserLabel.SetText(ratingLabel(v))
		t.fire()
	})

	t.table = components.NewRecordTable(SeriesColumns, []float32{300, 140, 80, 130})
	t.table.SetOnSelected(t.selectRow)

	t.selectedLabel = widget.NewLabel(noSeriesSelected)
	t.seasonsEntry = widget.NewEntry()
	t.seasonsEntry.SetPlaceHolder("Seasons")
	t.seasonsEntry.OnSubmitted = func(string) { t.submitSeasons() }
	t.updateButton = widget.NewButton("Update seasons", t.submitSeasons)
	t.updateButton.Disable()
	return t
}

func (t *seriesTab) content() fyne.CanvasObject {
	clear := widget.NewButton("Clear filters", t.clear)
	top := container.NewVBox(
		widget.NewLabelWithStyle("Search series", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2,
			widget.NewForm(widget.NewFormItem("Title", t.titleEntry)),
			widget.NewForm(widget.NewFormItem("Min user rating", container.NewBorder(nil, nil, nil, t.minUserLabel, t.minUser))),
		),
		container.NewHBox(clear),
	)
	editor := container.NewBorder(nil, nil, t.selectedLabel, t.updateButton, t.seasonsEntry)
	return container.NewBorder(top, editor, nil, nil, t.table.Widget())
}

func (t *seriesTab) filter() services.SeriesFilter {
	return services.SeriesFilter{Title: t.titleEntry.Text, MinUserRating: t.minUser.Value}
}

func (t *seriesTab) fire() {
	if t.clearing || t.onFilter == nil {
		return
	}
	t.onFilter(t.filter())
}

func (t *seriesTab) clear() {
	t.clearing = true
	t.titleEntry.SetText("")
	t.minUser.SetValue(0)
	t.minUserLabel.SetText(ratingLabel(0))
	t.clearing = false
	t.fire()
}

func (t *seriesTab) selectRow(row int) {
	if row < 0 || row >= len(t.ids) {
		return
	}
	t.selected = t.ids[row]
	t.selectedLabel.SetText(t.table.Cell(row, 0))
	t.seasonsEntry.SetText(t.table.Cell(row, 2))
	t.updateButton.Enable()
}

func (t *seriesTab) submitSeasons() {
	if t.selected == 0 || t.onSeasons == nil {
		return
	}
	t.onSeasons(t.selected, t.seasonsEntry.Text)
}

func (t *seriesTab) setSeries(list []*models.Series) {
	rows := make([][]string, len(list))
	ids := make([]int64, len(list))
	for i, s := range list {
		ids[i] = s.ID
		rows[i] = []string{
			s.Title,
			s.Genre,
			strconv.Itoa(len(s.Seasons)),
			fmt.Sprintf("%.2f", s.AverageUserRating()),
		}
	}
	t.ids = ids
	t.table.SetRows(rows)

	// the table lost its selection; keep the editor if the series is still listed
	for i, id := range ids {
		if id == t.selected {
			t.selectedLabel.SetText(rows[i][0])
			t.seasonsEntry.SetText(rows[i][2])
			return
		}
	}
	t.selected = 0
	t.selectedLabel.SetText(noSeriesSelected)
	t.seasonsEntry.SetText("")
	t.updateButton.Disable()
}
