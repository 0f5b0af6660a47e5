package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"sprintboard/internal/config"
	"sprintboard/internal/lifecycle"
	"sprintboard/internal/logger"
	"sprintboard/internal/repository"
	"sprintboard/internal/repository/inmemory"
	"sprintboard/internal/repository/postgres"
	"sprintboard/internal/service"
	"sprintboard/internal/worker"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config    *config.Config
	server    *http.Server
	handler   http.Handler
	store     repository.Store
	worker    *worker.StatusWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init builds the store, the services, the router and the worker.
func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	store, err := a.initStore(ctx)
	if err != nil {
		return nil, err
	}
	a.store = store

	auth := service.NewAuthService(store, a.config.Auth.TokenTTL)
	if err := auth.SeedUsers(ctx, a.config.Auth.Users); err != nil {
		return nil, fmt.Errorf("создание пользователей: %w", err)
	}

	engine := lifecycle.New(nil)
	a.handler = NewRouter(a.config, Services{
		Auth:       auth,
		Workspaces: service.NewWorkspaceService(store),
		Sprints:    service.NewSprintService(store, engine),
		Tasks:      service.NewTaskService(store),
		Health:     store,
	})

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewStatusWorker(store, &a.config.Worker.Interval, &a.config.Worker.BatchSize)
	}
	return a, nil
}

func (a *App) initStore(ctx context.Context) (repository.Store, error) {
	switch a.config.Repository.Type {
	case "postgres":
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, fmt.Errorf("миграции: %w", err)
		}
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage, nil
	default:
		logger.Info("App: Используется хранилище в памяти")
		return inmemory.NewStorage(), nil
	}
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP and runs the worker until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	})

	if a.worker != nil {
		g.Go(func() error {
			a.worker.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownPeriod)
		defer cancel()
		logger.Info("App: Остановка сервера")
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown releases resources in reverse order of acquisition.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
