package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/repository"
	"github.com/google/uuid"
)

type JobUsecase struct {
	repo     repository.JobRepository
	validate inputValidator
}

func NewJobUsecase(repo repository.JobRepository, validate inputValidator) *JobUsecase {
	return &JobUsecase{repo: repo, validate: validate}
}

type CreateJobInput struct {
	OwnerID  string        `json:"-"`
	Company  string        `json:"company"  validate:"required,max=100"`
	Position string        `json:"position" validate:"required,max=100"`
	Status   domain.Status `json:"status"   validate:"omitempty,oneof=interview declined pending"`
}

type UpdateJobInput struct {
	ID       string         `json:"-"`
	OwnerID  string         `json:"-"`
	Company  *string        `json:"company"  validate:"omitnil,min=1,max=100"`
	Position *string        `json:"position" validate:"omitnil,min=1,max=100"`
	Status   *domain.Status `json:"status"   validate:"omitnil,oneof=interview declined pending"`
}

type ListJobsInput struct {
	OwnerID string        `json:"-"`
	Status  domain.Status `json:"status" validate:"omitempty,oneof=interview declined pending"`
}

func (u *JobUsecase) Create(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)

	if err := u.validate.Check(input); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = domain.StatusPending
	}

	created, err := u.repo.Create(ctx, &domain.Job{
		Company:   input.Company,
		Position:  input.Position,
		Status:    input.Status,
		CreatedBy: input.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

func (u *JobUsecase) GetByID(ctx context.Context, jobID, ownerID string) (*domain.Job, error) {
	if !validJobID(jobID) {
		return nil, domain.ErrJobNotFound
	}

	job, err := u.repo.GetByID(ctx, jobID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) List(ctx context.Context, input ListJobsInput) ([]*domain.Job, error) {
	if err := u.validate.Check(input); err != nil {
		return nil, err
	}

	jobs, err := u.repo.List(ctx, repository.ListJobsInput{
		OwnerID: input.OwnerID,
		Status:  input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Update applies the provided fields. An empty update returns the job unchanged.
func (u *JobUsecase) Update(ctx context.Context, input UpdateJobInput) (*domain.Job, error) {
	if !validJobID(input.ID) {
		return nil, domain.ErrJobNotFound
	}

	input.Company = trimPtr(input.Company)
	input.Position = trimPtr(input.Position)

	if err := u.validate.Check(input); err != nil {
		return nil, err
	}

	patch := domain.JobPatch{
		Company:  input.Company,
		Position: input.Position,
		Status:   input.Status,
	}
	if patch.Empty() {
		return u.GetByID(ctx, input.ID, input.OwnerID)
	}

	job, err := u.repo.Update(ctx, input.ID, input.OwnerID, patch)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) Delete(ctx context.Context, jobID, ownerID string) error {
	if !validJobID(jobID) {
		return domain.ErrJobNotFound
	}

	if err := u.repo.Delete(ctx, jobID, ownerID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// Job IDs are UUIDs in every store; anything else cannot exist.
func validJobID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
