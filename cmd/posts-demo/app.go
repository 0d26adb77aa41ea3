package main

import (
	"context"
	"fmt"

	"task-middleware/config"
	"task-middleware/logger"
	"task-middleware/posts"
	"task-middleware/tasks/effects"
	"task-middleware/tasks/fetcher"
	"task-middleware/tasks/middleware"
	"task-middleware/tasks/registry"
	"task-middleware/tasks/storage"
	"task-middleware/tasks/store"
)

type closableStorage interface {
	effects.Storage
	Close() error
}

// app is the wired pipeline shared by every command.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	services *registry.Registry
	store    *store.MemoryStore[posts.State]
	storage  closableStorage
}

func newApp(cfg *config.Config, lg *logger.Logger) (*app, error) {
	kv, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	services := registry.New().
		Register(effects.FetchCapability, fetcher.NewHTTPFetcher(cfg.FetchTimeout)).
		Register(effects.StorageCapability, kv)

	lg.Info("Registered capabilities", map[string]any{
		"capabilities": services.Names(),
		"storage":      cfg.StorageBackend,
	})

	s := store.New(posts.Reduce, posts.InitialState(),
		middleware.Logging[posts.State](lg),
		middleware.New[posts.State](services, middleware.WithLogger(lg)),
	)

	return &app{
		cfg:      cfg,
		logger:   lg,
		services: services,
		store:    s,
		storage:  kv,
	}, nil
}

func newStorage(cfg *config.Config) (closableStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		kv, err := storage.NewRedisStorage(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("connect storage: %w", err)
		}
		return kv, nil
	default:
		return storage.NewMemoryStorage(), nil
	}
}

// hydrate loads the cached posts and waits until they are in the store.
func (a *app) hydrate(ctx context.Context) (posts.State, error) {
	a.store.Dispatch(posts.LoadInitialState(a.cfg.StorageKey))
	return store.WaitFor(ctx, a.store, func(s posts.State) bool { return s.Hydrated })
}

// refresh fetches url and waits until the result or failure is reduced.
func (a *app) refresh(ctx context.Context, url string) (posts.State, error) {
	a.store.Dispatch(posts.Requested())
	a.store.Dispatch(posts.RequestPosts(url, a.cfg.StorageKey))
	return store.WaitFor(ctx, a.store, func(s posts.State) bool { return !s.Loading })
}

func (a *app) Close() error {
	return a.storage.Close()
}
