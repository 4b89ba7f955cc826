package repository

import (
	"context"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
)

type ListJobsInput struct {
	OwnerID string
	Status  domain.Status // empty = all statuses
}

// UseCase depends on interface, not concrete implementation.
// Every lookup takes the owner ID: a job owned by someone else is reported
// as domain.ErrJobNotFound, the same as a missing one.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id, ownerID string) (*domain.Job, error)
	// List returns jobs ordered by created_at DESC, id DESC.
	List(ctx context.Context, input ListJobsInput) ([]*domain.Job, error)
	Update(ctx context.Context, id, ownerID string, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id, ownerID string) error

	// CountByStatus aggregates across all owners for the stats collector.
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}
