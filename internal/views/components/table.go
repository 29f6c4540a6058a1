package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// RecordTable is a read-only table with a header row. Rows are plain strings
// so the table never touches domain records.
type RecordTable struct {
	table   *widget.Table
	headers []string
	widths  []float32
	rows    [][]string

	onSelect func(row int)
}

// NewRecordTable creates a table with the given column headers and widths
func NewRecordTable(headers []string, widths []float32) *RecordTable {
	rt := &RecordTable{headers: headers, widths: widths}
	rt.createTable()
	return rt
}

func (rt *RecordTable) createTable() {
	rt.table = widget.NewTable(
		func() (int, int) { return len(rt.rows), len(rt.headers) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(rt.Cell(id.Row, id.Col))
		},
	)
	rt.table.ShowHeaderRow = true
	rt.table.CreateHeader = func() fyne.CanvasObject {
		l := widget.NewLabel("")
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	rt.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Row < 0 && id.Col >= 0 && id.Col < len(rt.headers) {
			o.(*widget.Label).SetText(rt.headers[id.Col])
		}
	}
	for i, w := range rt.widths {
		rt.table.SetColumnWidth(i, w)
	}
	rt.table.OnSelected = func(id widget.TableCellID) {
		if rt.onSelect != nil && id.Row >= 0 && id.Row < len(rt.rows) {
			rt.onSelect(id.Row)
		}
	}
}

// SetRows replaces the table contents and clears the selection
func (rt *RecordTable) SetRows(rows [][]string) {
	fyne.Do(func() {
		rt.rows = rows
		rt.table.UnselectAll()
		rt.table.Refresh()
	})
}

// Rows returns the number of data rows
func (rt *RecordTable) Rows() int {
	return len(rt.rows)
}

// Cell returns the text at row, col or "" when out of range
func (rt *RecordTable) Cell(row, col int) string {
	if row < 0 || row >= len(rt.rows) || col < 0 || col >= len(rt.rows[row]) {
		return ""
	}
	return rt.rows[row][col]
}

func (rt *RecordTable) SetOnSelected(fn func(row int)) {
	rt.onSelect = fn
}

func (rt *RecordTable) Widget() *widget.Table {
	return rt.table
}
