package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"storerating/config"
	"storerating/internal/domain/lifecycle"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates PostgreSQL client mapping
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres config section is missing")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Disable GORM's per-statement implicit transaction.
		// We keep explicit transactions via txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			params.Logger.InfoContext(ctx, "Postgres connected",
				slog.Int("replicas", len(params.Config.Postgres.Replicas)),
			)

			if err := checkSchema(ctx, db, params.Logger); err != nil {
				return err
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// poolWait is the contention observed between two pool snapshots.
type poolWait struct {
	waits   int64
	waited  time.Duration
	current sql.DBStats
}

// diffPoolStats reports the waits that happened after prev. ok is false when
// no caller had to wait for a connection.
func diffPoolStats(prev, cur sql.DBStats) (poolWait, bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return poolWait{}, false
	}

	return poolWait{waits: waits, waited: cur.WaitDuration - prev.WaitDuration, current: cur}, true
}

func (w poolWait) level() slog.Level {
	if w.waited >= dbPoolWarnDurationThreshold {
		return slog.LevelWarn
	}

	return slog.LevelDebug
}

func (w poolWait) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int64("waits", w.waits),
		slog.Duration("waited", w.waited),
		slog.Duration("avg_wait", w.waited/time.Duration(w.waits)),
		slog.Int("max_open", w.current.MaxOpenConnections),
		slog.Int("open", w.current.OpenConnections),
		slog.Int("in_use", w.current.InUse),
		slog.Int("idle", w.current.Idle),
	}
}

// monitorDBPool logs connection pool contention until ctx is cancelled.
func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if wait, ok := diffPoolStats(prev, cur); ok {
				logger.LogAttrs(ctx, wait.level(), "Postgres pool contention", wait.attrs()...)
			}
			prev = cur
		}
	}
}
