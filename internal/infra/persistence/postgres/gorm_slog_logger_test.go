package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"storerating/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBufferedGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), cfg).(*gormSlogLogger)

	return l, &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &line))

	return line
}

func TestGormSlogLogger_ParamsFilter(t *testing.T) {
	l, _ := newBufferedGormLogger(false)

	sql, params := l.ParamsFilter(context.Background(), "INSERT INTO users", "Jane", "$2a$10$abcdefghijklmnopqrstuv", 42)

	assert.Equal(t, "INSERT INTO users", sql)
	assert.Equal(t, []any{"Jane", redactedParam, 42}, params)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT * FROM stores", 2 }

	t.Run("failed query is logged", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

		line := lastLogLine(t, buf)
		assert.Equal(t, "GORM query failed", line["msg"])
		assert.Equal(t, "boom", line["error"])
		assert.Equal(t, "SELECT * FROM stores", line["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

		assert.Zero(t, buf.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, buf := newBufferedGormLogger(false)

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

		assert.Equal(t, "GORM slow query", lastLogLine(t, buf)["msg"])
	})

	t.Run("fast query only in debug", func(t *testing.T) {
		quiet, quietBuf := newBufferedGormLogger(false)
		quiet.Trace(context.Background(), time.Now(), sqlFn, nil)
		assert.Zero(t, quietBuf.Len())

		verbose, verboseBuf := newBufferedGormLogger(true)
		verbose.Trace(context.Background(), time.Now(), sqlFn, nil)
		line := lastLogLine(t, verboseBuf)
		assert.Equal(t, "GORM query", line["msg"])
		assert.Equal(t, float64(2), line["rows"])
	})
}
