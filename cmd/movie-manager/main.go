package main

import (
	"flag"
	"fmt"
	"os"

	"movie-manager/internal/config"
	"movie-manager/internal/logger"
)

const (
	AppName    = "Movie & Series Manager"
	AppID      = "com.moviemanager.desktop"
	AppVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default "+config.DefaultFileName+" if present)")
	flag.Parse()

	boot := logger.New(logger.InfoLevel, nil)

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Error("Main", "configuration failed", err, map[string]interface{}{"code": config.Code(err)})
		os.Exit(1)
	}

	appLogger, closeLog, err := newLogger(cfg)
	if err != nil {
		boot.Error("Main", "opening log file failed", err, map[string]interface{}{"log_file": cfg.LogFile})
		os.Exit(1)
	}
	defer closeLog()

	application, err := NewApplication(cfg, appLogger)
	if err != nil {
		appLogger.Error("Main", "application initialization failed", err, nil)
		os.Exit(1)
	}

	application.Run()
	appLogger.Info("Main", "application terminated", nil)
}

// newLogger builds the logger from cfg. When a log file is configured, JSON
// entries are appended to it next to the console output.
func newLogger(cfg config.Config) (logger.Logger, func(), error) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return logger.New(level, nil), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.New(level, f), func() { f.Close() }, nil
}
