// Package app assembles the routing planner and package registry from a
// Config. The server, the CLI and the interactive shell share it so every
// entry point honors the same backends.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-network-service/internal/adapters/cache"
	"parcel-network-service/internal/adapters/repositories"
	"parcel-network-service/internal/config"
	"parcel-network-service/internal/domain"
	"parcel-network-service/internal/platform/db"
	"parcel-network-service/internal/ports"
	"parcel-network-service/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App owns the long-lived components and the resources behind them.
type App struct {
	Planner  *services.RoutePlanner
	Registry *services.PackageRegistry

	closers []func() error
}

// New builds the graph, the optional route cache and the registry backend
// selected by cfg. Close must be called to release stores and connections.
func New(ctx context.Context, cfg config.Config) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	routeCache, err := a.openRouteCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []services.RoutePlannerOption{services.WithDefaultSpeed(cfg.DefaultSpeedKmh)}
	if routeCache != nil {
		opts = append(opts, services.WithRouteCache(routeCache))
	}

	a.Planner, err = services.NewRoutePlanner(domain.BuildGraph(), opts...)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	store, err := a.openRegistryStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.Registry, err = services.NewPackageRegistry(ctx, store, a.Planner)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openRouteCache(ctx context.Context, cfg config.Config) (ports.RouteCache, error) {
	logger := zerolog.Ctx(ctx)

	switch cfg.RouteCache {
	case "lru":
		logger.Debug().Int("size", cfg.RouteCacheSize).Msg("route cache: lru")
		return cache.NewLRURouteCache(cfg.RouteCacheSize), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("new app: ping redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Debug().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.RouteCacheTTL).Msg("route cache: redis")
		return cache.NewRedisRouteCache(client, cfg.RouteCacheTTL), nil
	default:
		return nil, nil
	}
}

func (a *App) openRegistryStore(ctx context.Context, cfg config.Config) (ports.RegistryStore, error) {
	logger := zerolog.Ctx(ctx)

	switch cfg.RegistryBackend {
	case "memory":
		logger.Warn().Msg("registry backend: memory, state is lost on exit")
		return repositories.NewMemoryRegistryStore(), nil
	case "bolt":
		s, err := repositories.OpenBoltRegistryStore(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.closers = append(a.closers, s.Close)
		logger.Debug().Str("path", cfg.BoltPath).Msg("registry backend: bolt")
		return s, nil
	case "postgres":
		conn, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		logger.Debug().Msg("registry backend: postgres")
		return repositories.NewPostgresRegistryStore(conn), nil
	default:
		logger.Debug().Str("path", cfg.RegistryPath).Msg("registry backend: json")
		return repositories.NewJSONRegistryStore(cfg.RegistryPath), nil
	}
}

// OpenPostgres connects and makes sure the packages table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
