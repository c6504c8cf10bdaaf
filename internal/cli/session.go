package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/seatsync/internal/config"
	"github.com/mmynk/seatsync/internal/notify"
	"github.com/mmynk/seatsync/internal/plan"
	"github.com/mmynk/seatsync/internal/storage"
	"github.com/mmynk/seatsync/internal/storage/memory"
	"github.com/mmynk/seatsync/internal/storage/postgres"
	"github.com/mmynk/seatsync/internal/storage/s3"
	"github.com/mmynk/seatsync/internal/storage/sqlite"
	"github.com/mmynk/seatsync/internal/syncengine"
)

// session is a started engine and the stores behind it.
type session struct {
	engine *syncengine.Engine
	hub    *notify.Hub
	local  storage.Local
	remote storage.Remote
	logger *slog.Logger
}

// openSession opens the configured stores and starts the engine on them.
// reg may be nil for one-shot commands.
func openSession(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*session, error) {
	p, err := plan.Load(cfg.Plan.Path)
	if err != nil {
		return nil, err
	}

	local, err := openLocal(cfg.Local)
	if err != nil {
		return nil, err
	}
	logger.Info("Local cache opened", "driver", cfg.Local.Driver, "path", cfg.Local.Path)
	if at, ok := cacheUpdatedAt(ctx, local, cfg.Local.Key); ok {
		logger.Info("Local cache found", "key", cfg.Local.Key, "updated_at", at.Format(time.RFC3339))
	}

	s := &session{
		hub:    notify.New(logger),
		local:  local,
		logger: logger,
	}

	if cfg.Remote.Configured() {
		remote, err := openRemote(ctx, cfg.Remote)
		if err != nil {
			// A remote that cannot even be opened behaves like a failed
			// subscription: the session runs on the local cache.
			logger.Warn("Failed to open remote, using local cache", "driver", cfg.Remote.Driver, "error", err)
		} else {
			s.remote = remote
		}
	} else if cfg.Remote.Driver != config.RemoteNone {
		logger.Warn("Remote driver set but not configured, using local cache", "driver", cfg.Remote.Driver)
	}

	engine, err := syncengine.New(syncengine.Options{
		Local:     local,
		Remote:    s.remote,
		LocalKey:  cfg.Local.Key,
		RemoteKey: cfg.Remote.Key,
		Defaults:  p.Snapshot(plan.NewSalt()),
		Notifier:  s.hub,
		Logger:    logger,
		Metrics:   syncengine.NewMetrics(reg),
	})
	if err != nil {
		s.closeStores()
		return nil, err
	}
	s.engine = engine

	if err := engine.Start(ctx); err != nil {
		s.Close(context.Background())
		return nil, fmt.Errorf("start engine: %w", err)
	}
	logger.Info("Seating data loaded", "mode", engine.Mode().String(), "tables", len(engine.Snapshot().Tables), "guests", engine.Snapshot().GuestCount())
	return s, nil
}

// Close stops the engine, flushing pending writes, and closes the stores.
func (s *session) Close(ctx context.Context) error {
	var errs []error
	if s.engine != nil {
		if err := s.engine.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close engine: %w", err))
		}
	}
	if err := s.closeStores(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *session) closeStores() error {
	var errs []error
	if s.remote != nil {
		if err := s.remote.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close remote: %w", err))
		}
	}
	if err := s.local.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close local: %w", err))
	}
	return errors.Join(errs...)
}

func openLocal(cfg config.LocalConfig) (storage.Local, error) {
	switch cfg.Driver {
	case config.LocalMemory:
		return memory.New(), nil
	case config.LocalSQLite:
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open local cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown local driver %q", cfg.Driver)
	}
}

// cacheUpdatedAt reports when key was last written, for local stores that
// track it.
func cacheUpdatedAt(ctx context.Context, local storage.Local, key string) (time.Time, bool) {
	tracked, ok := local.(interface {
		UpdatedAt(ctx context.Context, key string) (int64, error)
	})
	if !ok {
		return time.Time{}, false
	}
	ts, err := tracked.UpdatedAt(ctx, key)
	if err != nil || ts == 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

func openRemote(ctx context.Context, cfg config.RemoteConfig) (storage.Remote, error) {
	switch cfg.Driver {
	case config.RemotePostgres:
		return postgres.New(ctx, cfg.Postgres.DSN)
	case config.RemoteS3:
		return s3.New(ctx, s3.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
			PollInterval:    cfg.S3.PollInterval,
		})
	default:
		return nil, fmt.Errorf("unknown remote driver %q", cfg.Driver)
	}
}
