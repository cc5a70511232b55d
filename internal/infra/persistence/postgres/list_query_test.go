package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"coffee":    "coffee",
		"100%":      `100\%`,
		"a_b":       `a\_b`,
		`back\lash`: `back\\lash`,
		`%_\`:       `\%\_\\`,
	}

	for in, want := range tests {
		assert.Equal(t, want, escapeLike(in), in)
	}

	assert.Equal(t, `%50\% off%`, containsPattern("50% off"))
}
