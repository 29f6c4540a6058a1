package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"movie-manager/internal/models"
)

// StatusBar displays the last action and catalog counts
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countsLabel *widget.Label
	userLabel   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.countsLabel = widget.NewLabel("No data loaded")
	sb.userLabel = widget.NewLabel("")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.countsLabel,
		widget.NewSeparator(),
		sb.userLabel,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetCounts shows how many records of each kind are loaded
func (sb *StatusBar) SetCounts(stats models.CatalogStats) {
	fyne.Do(func() {
		sb.countsLabel.SetText(fmt.Sprintf("Movies: %d | Series: %d | Directors: %d | Actors: %d | Reviews: %d",
			stats.Movies, stats.Series, stats.Directors, stats.Actors, stats.Reviews))
	})
}

// GetCounts returns the counts text
func (sb *StatusBar) GetCounts() string {
	return sb.countsLabel.Text
}

func (sb *StatusBar) SetUser(text string) {
	fyne.Do(func() {
		sb.userLabel.SetText(text)
	})
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
