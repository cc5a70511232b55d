// Package migrations embeds the SQL schema and exposes it as a golang-migrate source.
package migrations

import (
	"embed"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed sql/*.sql
var files embed.FS

// Source returns the embedded migrations as a golang-migrate source driver.
func Source() (source.Driver, error) {
	driver, err := iofs.New(files, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}

	return driver, nil
}

// LatestVersion returns the highest migration version embedded in the binary.
func LatestVersion() (uint, error) {
	driver, err := Source()
	if err != nil {
		return 0, err
	}
	defer driver.Close()

	version, err := driver.First()
	if err != nil {
		return 0, errors.Wrap(err, "embedded migrations are empty")
	}

	for {
		next, err := driver.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return version, nil
		}
		if err != nil {
			return 0, errors.Wrap(err, "failed to walk embedded migrations")
		}
		version = next
	}
}
