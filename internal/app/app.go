package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/qitrack/internal/repository"
	pdsaservice "github.com/thenoetrevino/qitrack/internal/services/pdsa"
	projectservice "github.com/thenoetrevino/qitrack/internal/services/project"
	"github.com/thenoetrevino/qitrack/internal/storage"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (in-memory collections over the backing store)
	repo *repository.Repository

	// Service layer (business logic)
	ProjectService projectservice.Service
	PdsaService    pdsaservice.Service
}

// New creates a new App around an already loaded repository
func New(repo *repository.Repository, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &App{
		repo:           repo,
		ProjectService: projectservice.NewService(repo, cfg.logger),
		PdsaService:    pdsaservice.NewService(repo, cfg.logger),
	}
}

// Open initializes storage, loads both collections and builds the App.
// This is the single entry point used by the CLI.
func Open(ctx context.Context, backend storage.Backend, dataDir string, opts ...Option) (*App, error) {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	store, err := storage.Open(backend, dataDir)
	if err != nil {
		return nil, err
	}

	repoOpts := []repository.Option{repository.WithLogger(cfg.logger)}
	if cfg.clock != nil {
		repoOpts = append(repoOpts, repository.WithClock(cfg.clock))
	}
	repo := repository.New(store, repoOpts...)

	if err := repo.Load(ctx); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			cfg.logger.Error("error closing store", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	return New(repo, opts...), nil
}

// Repo returns the underlying repository for direct access.
func (a *App) Repo() *repository.Repository {
	return a.repo
}

// Close releases the backing store
func (a *App) Close() error {
	return a.repo.Close()
}
