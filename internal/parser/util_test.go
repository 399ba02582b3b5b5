package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		refYear int
		want    time.Time
	}{
		{"portuguese abbreviated", "03 de nov. 2024", 0, time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)},
		{"portuguese full month", "15 de dezembro 2024", 0, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
		{"slash date", "26/11/2024", 0, time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)},
		{"dash date", "26-11-2024", 0, time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)},
		{"iso date", "2024-11-26", 0, time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)},
		{"short date inherits statement year", "26/11", 2024, time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDate(tt.input, tt.refYear)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestResolveDateErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		refYear int
	}{
		{"short date without reference year", "26/11", 0},
		{"impossible day", "32/01/2024", 0},
		{"impossible month", "01/13/2024", 0},
		{"unknown month name", "03 de xyz. 2024", 0},
		{"garbage", "not a date", 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDate(tt.input, tt.refYear)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}
