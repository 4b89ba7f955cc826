package auth_test

import (
	"testing"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLifetime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30d", 30 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"90m", 90 * time.Minute},
		{"45s", 45 * time.Second},
		{"1.5h", 90 * time.Minute},
		{"3600", time.Hour},
		{" 7D ", 7 * 24 * time.Hour},
		{"1h30m", 90 * time.Minute},
		{"500ms", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := auth.ParseLifetime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLifetime_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "d", "-1d", "0", "10x"} {
		_, err := auth.ParseLifetime(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestLifetime_UnmarshalText(t *testing.T) {
	var l auth.Lifetime
	require.NoError(t, l.UnmarshalText([]byte("30d")))
	assert.Equal(t, 30*24*time.Hour, l.Duration())

	assert.Error(t, l.UnmarshalText([]byte("forever")))
}
