package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareSchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		current schemaVersion
		wantErr string
	}{
		{name: "up to date", current: schemaVersion{Version: 3}},
		{name: "behind", current: schemaVersion{Version: 2}, wantErr: "is behind 3"},
		{name: "ahead", current: schemaVersion{Version: 4}, wantErr: "newer than this binary"},
		{name: "dirty", current: schemaVersion{Version: 3, Dirty: true}, wantErr: "is dirty"},
		{name: "empty table", current: schemaVersion{}, wantErr: "is behind 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compareSchemaVersion(tt.current, 3)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
