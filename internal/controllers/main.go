package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"movie-manager/internal/events"
	"movie-manager/internal/logger"
	"movie-manager/internal/services"
	"movie-manager/internal/views"
)

// Subscriber is the part of the event bus the controller listens on.
type Subscriber interface {
	Subscribe(eventType string, handler events.EventHandler)
	Unsubscribe(eventType string, handler events.EventHandler)
}

var refreshEvents = []string{
	events.CatalogLoaded,
	events.MovieAdded,
	events.SeriesAdded,
	events.SeriesSeasonsUpdated,
	events.ReviewSubmitted,
}

// MainController connects the main window to the catalog service
type MainController struct {
	catalog *services.CatalogService
	bus     Subscriber
	logger  logger.Logger

	mainView *views.MainView

	mu      sync.RWMutex
	session *services.Session
	handler events.EventHandler
}

// NewMainController creates a new main controller
func NewMainController(catalog *services.CatalogService, bus Subscriber, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NoOp{}
	}
	return &MainController{catalog: catalog, bus: bus, logger: log}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetMovieFilterHandler(mc.FilterMovies)
	mc.mainView.SetSeriesFilterHandler(mc.FilterSeries)
	mc.mainView.SetSeasonCountHandler(mc.UpdateSeasonCount)
	mc.mainView.SetReviewHandler(mc.SubmitReview)
	mc.mainView.SetAddMovieHandler(mc.AddMovie)
	mc.mainView.SetAddSeriesHandler(mc.AddSeries)
}

// Start fills the main window for sess and begins listening for catalog
// events. Events may arrive on any goroutine; the refresh runs via fyne.Do.
func (mc *MainController) Start(sess *services.Session) {
	mc.mu.Lock()
	mc.session = sess
	mc.mu.Unlock()

	mc.mainView.SetSession(sess.DisplayName(), sess.LoginID)
	mc.mainView.SetGenres(mc.catalog.Genres())
	mc.Refresh()

	if mc.bus != nil {
		mc.handler = events.HandlerFunc("main-controller", func(e events.Event) {
			mc.logger.Debug("MainController", "catalog event", map[string]interface{}{"type": e.Type})
			fyne.Do(mc.Refresh)
		})
		for _, t := range refreshEvents {
			mc.bus.Subscribe(t, mc.handler)
		}
	}
}

// Refresh redraws every table with the filters currently entered
func (mc *MainController) Refresh() {
	mc.mainView.SetMovies(mc.catalog.SearchMovies(mc.mainView.MovieFilter()))
	mc.mainView.SetSeries(mc.catalog.SearchSeries(mc.mainView.SeriesFilter()))
	mc.mainView.SetReviews(mc.catalog.Reviews())

	movies := mc.catalog.Catalog().Movies()
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	mc.mainView.SetMovieTitles(titles)

	directors := mc.catalog.Directors()
	dNames := make([]string, len(directors))
	for i, d := range directors {
		dNames[i] = d.FullName()
	}
	actors := mc.catalog.Actors()
	aNames := make([]string, len(actors))
	for i, a := range actors {
		aNames[i] = a.FullName()
	}
	mc.mainView.SetPeople(dNames, aNames)
	mc.mainView.SetCounts(mc.catalog.Stats())
}

func (mc *MainController) FilterMovies(f services.MovieFilter) {
	movies := mc.catalog.SearchMovies(f)
	mc.mainView.SetMovies(movies)
	mc.mainView.UpdateStatus(fmt.Sprintf("%d movies found", len(movies)))
}

func (mc *MainController) FilterSeries(f services.SeriesFilter) {
	list := mc.catalog.SearchSeries(f)
	mc.mainView.SetSeries(list)
	mc.mainView.UpdateStatus(fmt.Sprintf("%d series found", len(list)))
}

func (mc *MainController) AddMovie(form views.MovieForm) {
	in, err := mc.movieInput(form)
	if err != nil {
		mc.handleError("Invalid movie", err)
		return
	}
	res, err := mc.catalog.AddMovie(context.Background(), in)
	if err != nil {
		mc.handleError("Invalid movie", err)
		return
	}

	msg := fmt.Sprintf("The movie %q was added.", res.Movie.Title)
	if res.BestWork {
		msg += fmt.Sprintf("\nIt was also added to the best works of %s.", in.Director.FullName())
	}
	if res.PersistErr != nil {
		mc.handleError("Save failed", res.PersistErr)
	} else {
		mc.mainView.ShowInfo("Success", msg)
	}
	mc.mainView.ClearMovieForm()
	mc.mainView.UpdateStatus("Movie added: " + res.Movie.Title)
	mc.Refresh()
}

func (mc *MainController) AddSeries(form views.SeriesForm) {
	in, err := mc.seriesInput(form)
	if err != nil {
		mc.handleError("Invalid series", err)
		return
	}
	res, err := mc.catalog.AddSeries(context.Background(), in)
	if err != nil {
		mc.handleError("Invalid series", err)
		return
	}

	s := res.Series
	if res.PersistErr != nil {
		mc.handleError("Save failed", res.PersistErr)
	} else {
		mc.mainView.ShowInfo("Success", fmt.Sprintf("The series %q was added with %d seasons.", s.Title, len(s.Seasons)))
	}
	mc.mainView.ClearSeriesForm()
	mc.mainView.UpdateStatus("Series added: " + s.Title)
	mc.Refresh()
}

func (mc *MainController) UpdateSeasonCount(seriesID int64, count string) {
	n, err := parseInt("seasons", count)
	if err == nil {
		err = mc.catalog.UpdateSeasonCount(context.Background(), seriesID, n)
	}
	switch {
	case errors.Is(err, services.ErrSaveFailed):
		mc.handleError("Save failed", err)
	case err != nil:
		mc.handleError("Edit failed", err)
		mc.Refresh()
		return
	default:
		mc.mainView.ShowInfo("Success", fmt.Sprintf("The season count was updated to %d.", n))
	}
	mc.mainView.UpdateStatus("Seasons updated")
	mc.Refresh()
}

func (mc *MainController) SubmitReview(title, description string) {
	mc.mu.RLock()
	sess := mc.session
	mc.mu.RUnlock()

	if _, err := mc.catalog.SubmitReview(context.Background(), sess, title, description); err != nil {
		mc.handleError("Review not submitted", err)
		return
	}
	mc.mainView.ShowInfo("Success", "Your review was submitted!")
	mc.mainView.ClearReviewForm()
	mc.mainView.UpdateStatus("Review submitted")
	mc.Refresh()
}

func (mc *MainController) handleError(title string, err error) {
	mc.logger.Warning("MainController", title, map[string]interface{}{"error": err.Error()})
	mc.mainView.ShowError(title, err)
}

// Shutdown stops listening for catalog events
func (mc *MainController) Shutdown() {
	if mc.bus == nil || mc.handler == nil {
		return
	}
	for _, t := range refreshEvents {
		mc.bus.Unsubscribe(t, mc.handler)
	}
}
