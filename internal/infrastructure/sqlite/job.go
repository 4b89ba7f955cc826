package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/repository"
	"github.com/google/uuid"
)

const jobColumns = `id, company, position, status, created_by, created_at, updated_at`

type JobRepository struct {
	db  *sql.DB
	now func() time.Time
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	id := uuid.NewString()
	now := r.now()
	query := `
		INSERT INTO jobs (id, company, position, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		id,
		job.Company,
		job.Position,
		string(job.Status),
		job.CreatedBy,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return r.GetByID(ctx, id, job.CreatedBy)
}

func (r *JobRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = ? AND created_by = ?`

	return scanJob(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *JobRepository) List(ctx context.Context, input repository.ListJobsInput) ([]*domain.Job, error) {
	args := []any{input.OwnerID}
	where := []string{"created_by = ?"}

	if input.Status != "" {
		args = append(args, string(input.Status))
		where = append(where, "status = ?")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE %s
		ORDER BY created_at DESC, id DESC`,
		jobColumns, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Update applies the non-nil fields of patch. created_by is never touched.
func (r *JobRepository) Update(ctx context.Context, id, ownerID string, patch domain.JobPatch) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET    company    = COALESCE(?, company),
		       position   = COALESCE(?, position),
		       status     = COALESCE(?, status),
		       updated_at = ?
		WHERE id = ? AND created_by = ?`

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	res, err := r.db.ExecContext(ctx, query, patch.Company, patch.Position, status, r.now(), id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrJobNotFound
	}

	return r.GetByID(ctx, id, ownerID)
}

func (r *JobRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ? AND created_by = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int, len(domain.Statuses))
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan job count: %w", err)
		}
		counts[domain.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	return counts, nil
}

// *sql.Row and *sql.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		j      domain.Job
		status string
	)
	err := row.Scan(&j.ID, &j.Company, &j.Position, &status, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	j.Status = domain.Status(status)
	return &j, nil
}
