package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"movie-manager/internal/models"
	"movie-manager/internal/services"
	"movie-manager/internal/views/components"
)

const AppTitle = "Movie & Series Manager"

// MainView represents the main application window: five tabs over a status bar
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	tabs          *container.AppTabs
	statusBar     *components.StatusBar

	movies     *moviesTab
	series     *seriesTab
	reviews    *reviewsTab
	movieForm  *movieFormTab
	seriesForm *seriesFormTab
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.movies = newMoviesTab()
	mv.series = newSeriesTab()
	mv.reviews = newReviewsTab()
	mv.movieForm = newMovieFormTab()
	mv.seriesForm = newSeriesFormTab()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	mv.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Movies", theme.MediaVideoIcon(), mv.movies.content()),
		container.NewTabItemWithIcon("Series", theme.ListIcon(), mv.series.content()),
		container.NewTabItemWithIcon("Reviews", theme.DocumentCreateIcon(), mv.reviews.content()),
		container.NewTabItemWithIcon("Add Movie", theme.ContentAddIcon(), mv.movieForm.content()),
		container.NewTabItemWithIcon("Add Series", theme.ContentAddIcon(), mv.seriesForm.content()),
	)

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.tabs,
	)

	mv.window.SetContent(mv.mainContainer)
}

// Event handler setters - called by controller

// SetMovieFilterHandler is called with the current filter on every change
func (mv *MainView) SetMovieFilterHandler(handler func(services.MovieFilter)) {
	mv.movies.onFilter = handler
}

func (mv *MainView) SetSeriesFilterHandler(handler func(services.SeriesFilter)) {
	mv.series.onFilter = handler
}

// SetSeasonCountHandler receives the selected series and the raw count text
func (mv *MainView) SetSeasonCountHandler(handler func(seriesID int64, count string)) {
	mv.series.onSeasons = handler
}

func (mv *MainView) SetReviewHandler(handler func(title, description string)) {
	mv.reviews.onSubmit = handler
}

func (mv *MainView) SetAddMovieHandler(handler func(MovieForm)) {
	mv.movieForm.onAdd = handler
}

func (mv *MainView) SetAddSeriesHandler(handler func(SeriesForm)) {
	mv.seriesForm.onAdd = handler
}

// UI update methods - called by controller

func (mv *MainView) SetMovies(movies []*models.Movie) {
	fyne.Do(func() {
		mv.movies.setMovies(movies)
	})
}

func (mv *MainView) SetSeries(list []*models.Series) {
	fyne.Do(func() {
		mv.series.setSeries(list)
	})
}

func (mv *MainView) SetReviews(reviews []models.Review) {
	fyne.Do(func() {
		mv.reviews.setReviews(reviews)
	})
}

// SetMovieTitles fills the suggestions of the review form
func (mv *MainView) SetMovieTitles(titles []string) {
	fyne.Do(func() {
		mv.reviews.movieEntry.SetOptions(titles)
	})
}

// SetPeople fills the director and actor choices of both add forms
func (mv *MainView) SetPeople(directors, actors []string) {
	fyne.Do(func() {
		for _, sel := range []*widget.Select{mv.movieForm.director, mv.seriesForm.director} {
			sel.Options = directors
			sel.Refresh()
		}
		for _, sel := range []*widget.Select{mv.movieForm.actor, mv.seriesForm.actor} {
			sel.Options = actors
			sel.Refresh()
		}
	})
}

func (mv *MainView) SetGenres(genres []string) {
	fyne.Do(func() {
		mv.movieForm.genre.SetOptions(genres)
		mv.seriesForm.genre.SetOptions(genres)
	})
}

func (mv *MainView) SetBestWorkThreshold(v float64) {
	fyne.Do(func() {
		mv.movieForm.setThreshold(v)
	})
}

// SetSession shows who is logged in, in the title, the reviews tab and the status bar
func (mv *MainView) SetSession(name string, loginID int) {
	fyne.Do(func() {
		mv.window.SetTitle(fmt.Sprintf("%s - Welcome %s (Login ID: %d)", AppTitle, name, loginID))
		mv.reviews.userLabel.SetText(fmt.Sprintf("User: %s (ID: %d)", name, loginID))
		mv.statusBar.SetUser(name)
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) SetCounts(stats models.CatalogStats) {
	mv.statusBar.SetCounts(stats)
}

func (mv *MainView) ClearMovieForm() {
	fyne.Do(mv.movieForm.clear)
}

func (mv *MainView) ClearSeriesForm() {
	fyne.Do(mv.seriesForm.clear)
}

func (mv *MainView) ClearReviewForm() {
	fyne.Do(mv.reviews.clear)
}

// MovieFilter returns the filter currently entered in the movies tab
func (mv *MainView) MovieFilter() services.MovieFilter {
	return mv.movies.filter()
}

func (mv *MainView) SeriesFilter() services.SeriesFilter {
	return mv.series.filter()
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %w", title, err), mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}

// Close closes the view
func (mv *MainView) Close() {
	fyne.Do(func() {
		mv.window.Close()
	})
}
