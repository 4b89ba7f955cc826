// Package infrastructure selects and opens the persistence backend.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/job-tracker/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/job-tracker/internal/infrastructure/sqlite"
	"github.com/ErlanBelekov/job-tracker/internal/repository"
)

// Store is an open, migrated backend.
type Store struct {
	Users   repository.UserRepository
	Jobs    repository.JobRepository
	Backend string

	ping  func(ctx context.Context) error
	close func() error
}

// Open picks the backend from the URL scheme: postgres:// (or postgresql://)
// for Postgres, sqlite://<path> for SQLite.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	logger = logger.With("component", "store")

	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		s, err := postgres.Open(ctx, databaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Store{
			Users:   s.Users,
			Jobs:    s.Jobs,
			Backend: "postgres",
			ping:    s.Ping,
			close:   s.Close,
		}, nil

	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("open sqlite: empty path in %q", databaseURL)
		}
		s, err := sqlite.New(ctx, path, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Store{
			Users:   s.Users,
			Jobs:    s.Jobs,
			Backend: "sqlite",
			ping:    s.Ping,
			close:   s.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", schemeOf(databaseURL))
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Store) Close() error {
	return s.close()
}

func schemeOf(url string) string {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return ""
	}
	return scheme
}
