package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
	year = 365*day + 6*time.Hour
)

// DefaultLifetime matches the JWT_LIFETIME default.
const DefaultLifetime = 30 * day

// Lifetime is a token lifetime parsed from strings such as "30d", "12h" or "3600".
type Lifetime time.Duration

func (l *Lifetime) UnmarshalText(text []byte) error {
	d, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = Lifetime(d)
	return nil
}

func (l Lifetime) Duration() time.Duration {
	return time.Duration(l)
}

// ParseLifetime accepts a bare number of seconds, a single value with one of
// the suffixes s, m, h, d, w, y (e.g. "30d", "1.5h"), or any time.ParseDuration string.
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("parse lifetime: empty value")
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return checkLifetime(s, time.Duration(secs*float64(time.Second)))
	}

	units := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": day,
		"w": week,
		"y": year,
	}
	if unit, ok := units[s[len(s)-1:]]; ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64); err == nil {
			return checkLifetime(s, time.Duration(n*float64(unit)))
		}
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse lifetime %q: %w", s, err)
	}
	return checkLifetime(s, d)
}

func checkLifetime(s string, d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("parse lifetime %q: must be positive", s)
	}
	return d, nil
}
