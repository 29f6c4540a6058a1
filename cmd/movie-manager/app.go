package main

import (
	"context"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"movie-manager/internal/config"
	"movie-manager/internal/controllers"
	"movie-manager/internal/datafile"
	"movie-manager/internal/events"
	"movie-manager/internal/logger"
	"movie-manager/internal/models"
	"movie-manager/internal/services"
	"movie-manager/internal/shutdown"
	"movie-manager/internal/views"
)

const statsInterval = 30 * time.Second

// Application wires the catalog, the services and the two windows together
type Application struct {
	cfg     config.Config
	fyneApp fyne.App
	logger  logger.Logger

	bus      *events.Bus
	catalog  *services.CatalogService
	auth     *services.AuthService
	shutdown *shutdown.Manager

	loginView       *views.LoginView
	loginController *controllers.LoginController
	mainView        *views.MainView
	mainController  *controllers.MainController
}

// NewApplication creates and initializes the application using dependency injection
func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	log.Info("Application", "starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"data_dirs":  cfg.DataDirs,
		"log_level":  cfg.LogLevel,
		"persist":    cfg.Persist,
		"watch":      cfg.Watch,
	})

	bus := events.NewBus(64, log)
	loader := datafile.NewLoader(cfg.DataDirs, log)
	catalog := services.NewCatalogService(models.NewCatalog(), loader, bus, log, services.CatalogOptions{
		LoginDelay:        cfg.LoginDelay,
		BestWorkThreshold: cfg.BestWorkThreshold,
		Persist:           cfg.Persist,
	})
	auth := services.NewAuthService(catalog.Catalog(), log)

	loginWindow := fyneApp.NewWindow(AppName + " - Login")
	loginWindow.Resize(fyne.NewSize(480, 560))
	loginWindow.CenterOnScreen()
	loginView := views.NewLoginView(loginWindow)
	shutdownManager := shutdown.NewManager(log, 0)

	a := &Application{
		cfg:             cfg,
		fyneApp:         fyneApp,
		logger:          log,
		bus:             bus,
		catalog:         catalog,
		auth:            auth,
		shutdown:        shutdownManager,
		loginView:       loginView,
		loginController: controllers.NewLoginController(shutdownManager.Context(), auth, catalog, loginView, log),
	}

	a.loginController.OnLoggedIn(a.openMainWindow)
	a.loginController.OnExit(a.quit)
	a.shutdown.Register("event bus", bus)

	return a, nil
}

// Run shows the login window and blocks until the application quits
func (a *Application) Run() {
	a.shutdown.Listen(func() { fyne.Do(a.fyneApp.Quit) })

	a.loginView.Show()
	go func() {
		// the dialog on failure is the whole error path
		_ = a.loginController.LoadUsers(a.shutdown.Context())
	}()

	a.fyneApp.Run()
	a.shutdown.Shutdown()
}

// openMainWindow runs on the loader goroutine once the catalog is loaded
func (a *Application) openMainWindow(sess *services.Session, report *datafile.Report) {
	fyne.Do(func() {
		window := a.fyneApp.NewWindow(views.AppTitle)
		window.Resize(fyne.NewSize(a.cfg.Window.Width, a.cfg.Window.Height))
		window.CenterOnScreen()
		window.SetMaster()

		a.mainView = views.NewMainView(window)
		a.mainView.SetBestWorkThreshold(a.cfg.BestWorkThreshold)
		a.mainController = controllers.NewMainController(a.catalog, a.bus, a.logger)
		a.mainController.SetMainView(a.mainView)
		a.mainController.Start(sess)
		a.shutdown.Register("main controller", a.mainController)

		if len(report.Skipped) > 0 {
			a.mainView.UpdateStatus("Loaded with skipped lines, see the log")
		} else {
			a.mainView.UpdateStatus("Ready")
		}

		a.setupWindowEvents(window)
		a.mainView.Show()
		a.loginView.Close()
	})

	if a.cfg.Watch {
		a.startWatcher(report.BaseDir)
	}
	go a.startStatsMonitoring()
}

func (a *Application) startWatcher(dir string) {
	w, err := services.NewWatcher(a.catalog, dir, services.DefaultDebounce, a.logger)
	if err != nil {
		a.logger.Error("Application", "starting watcher failed", err, map[string]interface{}{"dir": dir})
		return
	}
	w.Start(a.shutdown.Context())
	a.shutdown.Register("watcher", w)
}

// setupWindowEvents asks for confirmation before the main window closes
func (a *Application) setupWindowEvents(window fyne.Window) {
	window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.mainView.ShowConfirm("Exit", "Are you sure you want to exit?", func(confirmed bool) {
			if confirmed {
				a.quit()
			}
		})
	})
}

func (a *Application) quit() {
	a.shutdown.Shutdown()
	fyne.Do(a.fyneApp.Quit)
}

func (a *Application) startStatsMonitoring() {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	ctx := a.shutdown.Context()
	for {
		select {
		case <-ticker.C:
			a.logStats(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *Application) logStats(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats := a.catalog.Stats()

	fields := a.catalog.Timings().Averages()
	fields["movies"] = stats.Movies
	fields["series"] = stats.Series
	fields["reviews"] = stats.Reviews
	fields["go_memory_mb"] = mem.Alloc / 1024 / 1024
	fields["goroutine_count"] = runtime.NumGoroutine()
	a.logger.Debug("Application", "catalog stats", fields)
}
