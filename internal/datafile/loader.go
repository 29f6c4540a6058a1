package datafile

import (
	"context"
	"fmt"
	"io"

	"movie-manager/internal/logger"
	"movie-manager/internal/models"
)

const component = "DataLoader"

// Loader locates the data directory and reads the data files into a snapshot.
type Loader struct {
	candidates []string
	logger     logger.Logger
}

func NewLoader(candidates []string, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NoOp{}
	}
	return &Loader{candidates: candidates, logger: log}
}

// BaseDir returns the directory the loader reads from.
func (l *Loader) BaseDir() (string, error) {
	return FindBaseDir(l.candidates)
}

// LoadUsers reads Users.txt only. The login window needs nothing else.
func (l *Loader) LoadUsers(ctx context.Context) ([]*models.User, *Report, error) {
	dir, err := l.BaseDir()
	if err != nil {
		l.logger.Error(component, "no data directory", err, nil)
		return nil, nil, err
	}
	report := newReport(dir)
	users, err := l.loadUsers(ctx, dir, report)
	if err != nil {
		return nil, nil, err
	}
	return users, report, nil
}

// LoadAll reads every data file. When users is non-nil Users.txt is not read
// again and the given users go into the snapshot unchanged.
func (l *Loader) LoadAll(ctx context.Context, users []*models.User) (models.Snapshot, *Report, error) {
	dir, err := l.BaseDir()
	if err != nil {
		l.logger.Error(component, "no data directory", err, nil)
		return models.Snapshot{}, nil, err
	}
	l.logger.Info(component, "using base path", map[string]interface{}{"dir": dir})

	report := newReport(dir)
	if users == nil {
		if users, err = l.loadUsers(ctx, dir, report); err != nil {
			return models.Snapshot{}, nil, err
		}
	} else {
		report.Counts[UsersFile] = len(users)
	}

	snap := models.Snapshot{Users: users}

	err = l.loadFile(ctx, dir, ActorsFile, report, func(f io.Reader) (int, []*LineError, error) {
		actors, skipped, err := ParseActors(f)
		snap.Actors = actors
		return len(actors), skipped, err
	})
	if err != nil {
		return models.Snapshot{}, nil, err
	}

	err = l.loadFile(ctx, dir, DirectorsFile, report, func(f io.Reader) (int, []*LineError, error) {
		directors, skipped, err := ParseDirectors(f)
		snap.Directors = AddFallbackDirectors(directors)
		return len(snap.Directors), skipped, err
	})
	if err != nil {
		return models.Snapshot{}, nil, err
	}

	err = l.loadFile(ctx, dir, MoviesFile, report, func(f io.Reader) (int, []*LineError, error) {
		movies, skipped, err := parseMovies(f, snap.Directors, snap.Actors, report.retain(MoviesFile))
		snap.Movies = movies
		return len(movies), skipped, err
	})
	if err != nil {
		return models.Snapshot{}, nil, err
	}

	err = l.loadFile(ctx, dir, SeriesFile, report, func(f io.Reader) (int, []*LineError, error) {
		series, skipped, err := parseSeries(f, snap.Directors, snap.Actors, report.retain(SeriesFile))
		snap.Series = series
		return len(series), skipped, err
	})
	if err != nil {
		return models.Snapshot{}, nil, err
	}

	l.logger.Info(component, "data loading completed", map[string]interface{}{
		"users":     len(snap.Users),
		"actors":    len(snap.Actors),
		"directors": len(snap.Directors),
		"movies":    len(snap.Movies),
		"series":    len(snap.Series),
		"skipped":   len(report.Skipped),
	})
	return snap, report, nil
}

func (l *Loader) loadUsers(ctx context.Context, dir string, report *Report) ([]*models.User, error) {
	var users []*models.User
	err := l.loadFile(ctx, dir, UsersFile, report, func(f io.Reader) (int, []*LineError, error) {
		var (
			skipped []*LineError
			err     error
		)
		users, skipped, err = ParseUsers(f)
		return len(users), skipped, err
	})
	return users, err
}

func (l *Loader) loadFile(ctx context.Context, dir, name string, report *Report, parse func(io.Reader) (int, []*LineError, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := openFile(dir, name)
	if err != nil {
		l.logger.Error(component, "open failed", err, map[string]interface{}{"file": name, "dir": dir})
		return err
	}
	defer f.Close()

	count, skipped, err := parse(f)
	if err != nil {
		err = fmt.Errorf("read %s: %w", name, err)
		l.logger.Error(component, "read failed", err, map[string]interface{}{"file": name})
		return err
	}
	for _, s := range skipped {
		l.logger.Warning(component, "skipped line", map[string]interface{}{
			"file":   s.File,
			"line":   s.Line,
			"reason": s.Err.Error(),
		})
	}
	report.Counts[name] = count
	report.Skipped = append(report.Skipped, skipped...)
	l.logger.Info(component, fmt.Sprintf("loaded %d records from %s", count, name), nil)
	return nil
}
