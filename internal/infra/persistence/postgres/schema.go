package postgres

import (
	"context"
	"log/slog"

	"storerating/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// schemaMigrationsTable is the bookkeeping table written by golang-migrate.
const schemaMigrationsTable = "schema_migrations"

type schemaVersion struct {
	Version uint
	Dirty   bool
}

// checkSchema refuses to serve against a database the migrate command has not brought up to date.
func checkSchema(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	latest, err := migrations.LatestVersion()
	if err != nil {
		return err
	}

	var current schemaVersion
	err = db.WithContext(ctx).
		Table(schemaMigrationsTable).
		Select("version", "dirty").
		Limit(1).
		Scan(&current).Error
	if pgErrorCode(err) == pgUndefinedTable {
		return errors.New("database schema is not initialized, run the migrate command first")
	}
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}

	if err := compareSchemaVersion(current, latest); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Database schema verified", slog.Uint64("version", uint64(current.Version)))

	return nil
}

func compareSchemaVersion(current schemaVersion, latest uint) error {
	switch {
	case current.Dirty:
		return errors.Errorf("database schema version %d is dirty, fix it and force the version", current.Version)
	case current.Version < latest:
		return errors.Errorf("database schema version %d is behind %d, run the migrate command", current.Version, latest)
	case current.Version > latest:
		return errors.Errorf("database schema version %d is newer than this binary supports (%d)", current.Version, latest)
	default:
		return nil
	}
}
