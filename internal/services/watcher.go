package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"movie-manager/internal/datafile"
	"movie-manager/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Reloader is the part of CatalogService the watcher drives.
type Reloader interface {
	Reload(ctx context.Context) (*datafile.Report, error)
	WroteWithin(d time.Duration) bool
}

// Watcher reloads the catalog when one of the data files changes on disk.
// Bursts of events are collapsed into one reload after the debounce interval.
type Watcher struct {
	reloader Reloader
	dir      string
	debounce time.Duration
	logger   logger.Logger
	fs       *fsnotify.Watcher

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	// reloaded is signalled after each reload attempt; tests wait on it.
	reloaded chan error
}

func NewWatcher(reloader Reloader, dir string, debounce time.Duration, log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.NoOp{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		reloader: reloader,
		dir:      dir,
		debounce: debounce,
		logger:   log,
		fs:       fsw,
		reloaded: make(chan error, 1),
	}, nil
}

// Start runs the event loop until ctx is cancelled or Shutdown is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
	w.logger.Info("Watcher", "watching data directory", map[string]interface{}{"dir": w.dir})
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isDataFile(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			w.logger.Debug("Watcher", "data file changed", map[string]interface{}{
				"file": filepath.Base(ev.Name),
				"op":   ev.Op.String(),
			})
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher", "watch error", err, nil)
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	// Atomic writes by the service itself land here too.
	if w.reloader.WroteWithin(2 * w.debounce) {
		w.logger.Debug("Watcher", "ignoring own write", nil)
		return
	}
	report, err := w.reloader.Reload(ctx)
	if err != nil {
		w.logger.Error("Watcher", "reload failed", err, map[string]interface{}{"dir": w.dir})
	} else {
		w.logger.Info("Watcher", "catalog reloaded", map[string]interface{}{
			"skipped": len(report.Skipped),
		})
	}
	select {
	case w.reloaded <- err:
	default:
	}
}

func (w *Watcher) Shutdown() {
	w.once.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		w.fs.Close()
		w.wg.Wait()
	})
}

func isDataFile(path string) bool {
	name := filepath.Base(path)
	for _, f := range datafile.Files {
		if f == name {
			return true
		}
	}
	return false
}
