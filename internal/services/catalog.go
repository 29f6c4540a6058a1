package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"movie-manager/internal/datafile"
	"movie-manager/internal/events"
	"movie-manager/internal/logger"
	"movie-manager/internal/models"
	"movie-manager/internal/timing"
)

var genres = []string{
	"Action", "Adventure", "Comedy", "Crime", "Drama", "Fantasy",
	"Horror", "Musical", "Mystery", "Romance", "Sci-Fi", "Thriller", "Western",
}

const (
	MinYear        = 1900
	MaxYear        = 2030
	MinDuration    = 1
	MaxDuration    = 500
	MinSeasons     = 1
	MaxSeasons     = 50
	DefaultYear    = 2024
	DefaultMinutes = 120
	DefaultIMDb    = 7.0
)

type CatalogOptions struct {
	LoginDelay        time.Duration
	BestWorkThreshold float64
	Persist           bool
}

// MovieInput is what the add-movie form submits.
type MovieInput struct {
	Title    string
	Year     int
	Genre    string
	Duration int
	Director *models.Director
	Actor    *models.Actor
	IMDb     float64
}

type SeriesInput struct {
	Title    string
	Year     int
	Genre    string
	Seasons  int
	Director *models.Director
	Actor    *models.Actor
}

// AddMovieResult reports what AddMovie did besides storing the movie.
type AddMovieResult struct {
	Movie *models.Movie
	// BestWork is set when the title was added to the director's best works.
	BestWork bool
	// PersistErr is set when the movie was stored in memory but writing
	// Movies.txt failed.
	PersistErr error
}

type AddSeriesResult struct {
	Series *models.Series
	// PersistErr is set when the series was stored in memory but writing
	// Series.txt failed.
	PersistErr error
}

// LoadResult is delivered once LoadAfterLogin finishes.
type LoadResult struct {
	Report *datafile.Report
	Err    error
}

// CatalogService owns the catalog and every operation the main window runs.
type CatalogService struct {
	catalog *models.Catalog
	loader  *datafile.Loader
	bus     events.Publisher
	logger  logger.Logger
	opts    CatalogOptions
	timings *timing.Tracker

	loadMu    sync.Mutex
	writeMu   sync.Mutex
	lastWrite atomic.Int64
	now       func() time.Time

	// unread lines of the last load per file, guarded by writeMu
	retained map[string][]datafile.Retained
}

func NewCatalogService(catalog *models.Catalog, loader *datafile.Loader, bus events.Publisher, log logger.Logger, opts CatalogOptions) *CatalogService {
	if log == nil {
		log = logger.NoOp{}
	}
	if opts.BestWorkThreshold == 0 {
		opts.BestWorkThreshold = 7.5
	}
	return &CatalogService{
		catalog: catalog,
		loader:  loader,
		bus:     bus,
		logger:  log,
		opts:    opts,
		timings: timing.NewTracker(),
		now:     time.Now,
	}
}

func (s *CatalogService) Catalog() *models.Catalog { return s.catalog }

// Timings reports how long reloads and saves took.
func (s *CatalogService) Timings() *timing.Tracker { return s.timings }

// LoadUsers reads Users.txt into the catalog for the login window.
func (s *CatalogService) LoadUsers(ctx context.Context) ([]*models.User, error) {
	users, _, err := s.loader.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog.SetUsers(users)
	return users, nil
}

// LoadAfterLogin waits the configured login delay on a background goroutine,
// then loads every data file. The channel receives exactly one result.
func (s *CatalogService) LoadAfterLogin(ctx context.Context) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	go func() {
		defer close(out)
		if s.opts.LoginDelay > 0 {
			t := time.NewTimer(s.opts.LoginDelay)
			defer t.Stop()
			select {
			case <-t.C:
			case <-ctx.Done():
				out <- LoadResult{Err: ctx.Err()}
				return
			}
		}
		report, err := s.Reload(ctx)
		out <- LoadResult{Report: report, Err: err}
	}()
	return out
}

// Reload reads every data file and swaps the result into the catalog. Users
// already loaded for the login window are kept.
func (s *CatalogService) Reload(ctx context.Context) (*datafile.Report, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	defer s.timings.Start("reload")()

	users := s.catalog.Users()
	if len(users) == 0 {
		users = nil
	}
	snap, report, err := s.loader.LoadAll(ctx, users)
	if err != nil {
		return nil, err
	}
	s.catalog.Replace(snap)
	s.writeMu.Lock()
	s.retained = report.Retained
	s.writeMu.Unlock()
	s.publish(ctx, events.CatalogLoaded, map[string]interface{}{
		"movies": len(snap.Movies),
		"series": len(snap.Series),
	})
	return report, nil
}

func (s *CatalogService) SearchMovies(f MovieFilter) []*models.Movie {
	return FilterMovies(s.catalog.Movies(), f)
}

func (s *CatalogService) SearchSeries(f SeriesFilter) []*models.Series {
	return FilterSeries(s.catalog.Series(), f)
}

// Genres offered by the add forms. The genre fields stay editable, so other
// values are accepted too.
func (s *CatalogService) Genres() []string { return slices.Clone(genres) }

func (s *CatalogService) Directors() []*models.Director { return s.catalog.Directors() }
func (s *CatalogService) Actors() []*models.Actor       { return s.catalog.Actors() }
func (s *CatalogService) Reviews() []models.Review      { return s.catalog.Reviews() }
func (s *CatalogService) Stats() models.CatalogStats    { return s.catalog.Stats() }

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validateTitleGenre(kind, title, genre string) error {
	if title == "" {
		return invalid("%s title is required", kind)
	}
	if genre == "" {
		return invalid("%s genre is required", kind)
	}
	if err := datafile.CheckField("title", title); err != nil {
		return invalid("%v", err)
	}
	if err := datafile.CheckField("genre", genre); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func validatePeople(director *models.Director, actor *models.Actor) error {
	if director == nil {
		return invalid("a director must be selected")
	}
	if actor == nil {
		return invalid("a lead actor must be selected")
	}
	return nil
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return invalid("year must be within %d..%d, got %d", MinYear, MaxYear, year)
	}
	return nil
}

// AddMovie validates in, stores the movie and, when its IMDb rating exceeds
// the best-work threshold, adds the title to the director's best works.
func (s *CatalogService) AddMovie(ctx context.Context, in MovieInput) (AddMovieResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Genre = strings.TrimSpace(in.Genre)
	if err := validateTitleGenre("movie", in.Title, in.Genre); err != nil {
		return AddMovieResult{}, err
	}
	if err := validatePeople(in.Director, in.Actor); err != nil {
		return AddMovieResult{}, err
	}
	if err := validateYear(in.Year); err != nil {
		return AddMovieResult{}, err
	}
	if in.Duration < MinDuration || in.Duration > MaxDuration {
		return AddMovieResult{}, invalid("duration must be within %d..%d minutes, got %d", MinDuration, MaxDuration, in.Duration)
	}

	movie, err := models.NewMovie(in.Title, in.Year, in.Genre, in.Duration, in.Director, in.IMDb, in.Actor)
	if err != nil {
		return AddMovieResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	res := AddMovieResult{Movie: movie}
	if in.IMDb > s.opts.BestWorkThreshold {
		res.BestWork = s.catalog.AddBestWork(in.Director, movie.Title)
	}
	s.catalog.AddMovie(movie)

	s.logger.Info("Catalog", "movie added", map[string]interface{}{
		"title":     movie.Title,
		"imdb":      movie.IMDbRating(),
		"best_work": res.BestWork,
	})
	res.PersistErr = s.persistMovies()
	s.publish(ctx, events.MovieAdded, map[string]interface{}{"id": movie.ID, "title": movie.Title})
	return res, nil
}

func validateSeasons(n int) error {
	if n < MinSeasons || n > MaxSeasons {
		return invalid("a series needs %d to %d seasons, got %d", MinSeasons, MaxSeasons, n)
	}
	return nil
}

// AddSeries stores a new series with seasons 1..in.Seasons, all dated in.Year.
// Director and actor are required by the form but a series stores neither
// until episodes are added.
func (s *CatalogService) AddSeries(ctx context.Context, in SeriesInput) (AddSeriesResult, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Genre = strings.TrimSpace(in.Genre)
	if err := validateTitleGenre("series", in.Title, in.Genre); err != nil {
		return AddSeriesResult{}, err
	}
	if err := validatePeople(in.Director, in.Actor); err != nil {
		return AddSeriesResult{}, err
	}
	if err := validateYear(in.Year); err != nil {
		return AddSeriesResult{}, err
	}
	if err := validateSeasons(in.Seasons); err != nil {
		return AddSeriesResult{}, err
	}

	series := models.NewSeries(in.Title, in.Genre)
	for i := 1; i <= in.Seasons; i++ {
		series.AddSeason(models.NewSeason(i, in.Year))
	}
	s.catalog.AddSeries(series)

	s.logger.Info("Catalog", "series added", map[string]interface{}{
		"title":   series.Title,
		"seasons": in.Seasons,
	})
	res := AddSeriesResult{Series: series, PersistErr: s.persistSeries()}
	s.publish(ctx, events.SeriesAdded, map[string]interface{}{"id": series.ID, "title": series.Title})
	return res, nil
}

// UpdateSeasonCount grows or truncates the seasons of a series. New seasons
// take the year of the current last season, or the current year. When only
// the write-back fails the change stays in memory and the error wraps
// ErrSaveFailed.
func (s *CatalogService) UpdateSeasonCount(ctx context.Context, seriesID int64, n int) error {
	if err := validateSeasons(n); err != nil {
		return err
	}
	series, err := s.catalog.FindSeries(seriesID)
	if err != nil {
		return err
	}
	year := s.now().Year()
	if last := series.LastSeason(); last != nil {
		year = last.Year
	}
	if err := s.catalog.SetSeasonCount(series, n, year); err != nil {
		return err
	}

	s.logger.Info("Catalog", "season count updated", map[string]interface{}{
		"title":   series.Title,
		"seasons": n,
	})
	err = s.persistSeries()
	s.publish(ctx, events.SeriesSeasonsUpdated, map[string]interface{}{"id": series.ID, "seasons": n})
	return err
}

// SubmitReview stores a review of an existing movie by the session's user.
func (s *CatalogService) SubmitReview(ctx context.Context, sess *Session, title, description string) (models.Review, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return models.Review{}, invalid("movie title is required")
	}
	if description == "" {
		return models.Review{}, invalid("description is required")
	}
	if sess == nil {
		return models.Review{}, invalid("no user is logged in")
	}
	movie, err := s.catalog.FindMovieByTitle(title)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Review{}, invalid("movie %q was not found", title)
		}
		return models.Review{}, err
	}

	r := models.Review{
		MovieTitle:  movie.Title,
		UserName:    sess.DisplayName(),
		LoginID:     sess.LoginID,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.catalog.AddReview(r)
	s.publish(ctx, events.ReviewSubmitted, map[string]interface{}{"title": r.MovieTitle})
	return r, nil
}

func (s *CatalogService) persistMovies() error {
	if !s.opts.Persist {
		return nil
	}
	return s.persist(datafile.MoviesFile, func(dir string) error {
		return datafile.WriteMovies(dir, s.catalog.Movies(), s.retained[datafile.MoviesFile])
	})
}

func (s *CatalogService) persistSeries() error {
	if !s.opts.Persist {
		return nil
	}
	return s.persist(datafile.SeriesFile, func(dir string) error {
		return datafile.WriteSeries(dir, s.catalog.Series(), s.retained[datafile.SeriesFile])
	})
}

func (s *CatalogService) persist(name string, write func(dir string) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	defer s.timings.Start("save")()

	dir, err := s.loader.BaseDir()
	if err == nil {
		s.lastWrite.Store(s.now().UnixNano())
		err = write(dir)
	}
	if err != nil {
		s.logger.Error("Catalog", "save failed", err, map[string]interface{}{"file": name})
		return fmt.Errorf("%w: %s: %w", ErrSaveFailed, name, err)
	}
	return nil
}

// WroteWithin reports whether the service itself wrote a data file within d.
// The watcher uses it to ignore its own writes.
func (s *CatalogService) WroteWithin(d time.Duration) bool {
	last := s.lastWrite.Load()
	return last != 0 && s.now().Sub(time.Unix(0, last)) < d
}

func (s *CatalogService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, Data: data, Context: ctx})
}
