// Package app wires the rdw CLI dependencies together.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	httpadapter "rdw/internal/adapters/http"
	"rdw/internal/adapters/terminal"
	"rdw/internal/config"
	"rdw/internal/debrid"
	"rdw/internal/domain"
	"rdw/internal/logging"
	"rdw/internal/services/resolver"
	"rdw/internal/services/tokencache"
	"rdw/internal/services/webauth"
)

// Options selects the session mode and runtime settings for a CLI run.
type Options struct {
	ConfigPath string
	APIToken   string
	Username   string
	Password   string
	Anonymous  bool
	Verbose    bool
}

// App holds the wired application dependencies.
type App struct {
	Client *debrid.Client
	Cache  *tokencache.Store
	Config config.Config
	Logger *slog.Logger
}

// New builds a ready-to-use App: logger, config, transport, token cache, web
// authenticator, resolver, and the debrid client.
func New(ctx context.Context, opts Options) (*App, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(level)

	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.Path()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "error", err)
	}

	if opts.Username == "" {
		opts.Username = cfg.Username
	}

	adapter := httpadapter.NewAdapter(time.Duration(cfg.TimeoutSeconds)*time.Second, logger)

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = tokencache.DefaultPath()
	}
	cache, err := tokencache.Open(cachePath)
	if err != nil {
		return nil, err
	}

	authenticator := webauth.NewService(adapter, webauth.RandomAgents{}, webauth.Endpoints{
		Login:     cfg.LoginURL,
		TokenPage: cfg.TokenPageURL,
	}, logger)
	probe := debrid.NewTokenProbe(adapter, cfg.BaseURL)
	tokens := resolver.New(cache, authenticator, probe, logger)

	client, err := debrid.New(ctx, debrid.Options{
		BaseURL:         cfg.BaseURL,
		APIToken:        opts.APIToken,
		Username:        opts.Username,
		Password:        opts.Password,
		AnonymousAccess: opts.Anonymous,
	}, adapter, tokens, logger)
	if err != nil {
		_ = cache.Close()
		return nil, err
	}

	return &App{
		Client: client,
		Cache:  cache,
		Config: cfg,
		Logger: logger,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() {
	a.Client.StopSession()
	_ = a.Cache.Close()
}

// PasswordReader returns the interactive password reader for the process
// terminal.
func PasswordReader() domain.PasswordReader {
	return terminal.NewAdapter(os.Stdin, os.Stderr)
}
