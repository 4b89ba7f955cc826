package usecase_test

import (
	"context"
	"strings"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/repository"
)

// ---- fakes ----

type fakeUserRepo struct {
	create      func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
	findByID    func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

// fakeHasher "hashes" by prefixing, and counts Verify calls.
type fakeHasher struct {
	hashErr  error
	verified int
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plaintext, nil
}

func (h *fakeHasher) Verify(plaintext, hash string) bool {
	h.verified++
	return strings.TrimPrefix(hash, "hashed:") == plaintext && strings.HasPrefix(hash, "hashed:")
}

type fakeJobRepo struct {
	create        func(ctx context.Context, job *domain.Job) (*domain.Job, error)
	getByID       func(ctx context.Context, id, ownerID string) (*domain.Job, error)
	list          func(ctx context.Context, input repository.ListJobsInput) ([]*domain.Job, error)
	update        func(ctx context.Context, id, ownerID string, patch domain.JobPatch) (*domain.Job, error)
	delete        func(ctx context.Context, id, ownerID string) error
	countByStatus func(ctx context.Context) (map[domain.Status]int, error)
}

func (r *fakeJobRepo) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	return r.create(ctx, job)
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id, ownerID string) (*domain.Job, error) {
	return r.getByID(ctx, id, ownerID)
}

func (r *fakeJobRepo) List(ctx context.Context, input repository.ListJobsInput) ([]*domain.Job, error) {
	return r.list(ctx, input)
}

func (r *fakeJobRepo) Update(ctx context.Context, id, ownerID string, patch domain.JobPatch) (*domain.Job, error) {
	return r.update(ctx, id, ownerID, patch)
}

func (r *fakeJobRepo) Delete(ctx context.Context, id, ownerID string) error {
	return r.delete(ctx, id, ownerID)
}

func (r *fakeJobRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	return r.countByStatus(ctx)
}
