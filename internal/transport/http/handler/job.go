package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type jobUsecaser interface {
	Create(ctx context.Context, input usecase.CreateJobInput) (*domain.Job, error)
	GetByID(ctx context.Context, jobID, ownerID string) (*domain.Job, error)
	List(ctx context.Context, input usecase.ListJobsInput) ([]*domain.Job, error)
	Update(ctx context.Context, input usecase.UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, jobID, ownerID string) error
}

type JobHandler struct {
	jobUsecase jobUsecaser
	logger     *slog.Logger
}

func NewJobHandler(jobUsecase jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger.With("component", "job_handler")}
}

type createJobRequest struct {
	Company  string        `json:"company"`
	Position string        `json:"position"`
	Status   domain.Status `json:"status"`
}

type updateJobRequest struct {
	Company  *string        `json:"company"`
	Position *string        `json:"position"`
	Status   *domain.Status `json:"status"`
}

type jobResponse struct {
	ID        string        `json:"id"`
	Company   string        `json:"company"`
	Position  string        `json:"position"`
	Status    domain.Status `json:"status"`
	CreatedBy string        `json:"createdBy"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:        j.ID,
		Company:   j.Company,
		Position:  j.Position,
		Status:    j.Status,
		CreatedBy: j.CreatedBy,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// GET /api/jobs?status=
func (h *JobHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	jobs, err := h.jobUsecase.List(c.Request.Context(), usecase.ListJobsInput{
		OwnerID: owner,
		Status:  domain.Status(c.Query("status")),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, toJobResponse(j))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resp, "count": len(resp)})
}

// POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody)
		return
	}

	job, err := h.jobUsecase.Create(c.Request.Context(), usecase.CreateJobInput{
		OwnerID:  owner,
		Company:  req.Company,
		Position: req.Position,
		Status:   req.Status,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "job created", "job_id", job.ID)
	c.JSON(http.StatusCreated, gin.H{"job": toJobResponse(job)})
}

// GET /api/jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	job, err := h.jobUsecase.GetByID(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// PATCH /api/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody)
		return
	}

	job, err := h.jobUsecase.Update(c.Request.Context(), usecase.UpdateJobInput{
		ID:       c.Param("id"),
		OwnerID:  owner,
		Company:  req.Company,
		Position: req.Position,
		Status:   req.Status,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": toJobResponse(job)})
}

// DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.jobUsecase.Delete(c.Request.Context(), c.Param("id"), owner); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "job deleted", "job_id", c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ownerID reads the identity bound by the Auth middleware. Routes are only
// mounted behind Auth, so a miss means the router is misconfigured.
func ownerID(c *gin.Context) (string, bool) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		_ = c.Error(domain.ErrTokenMissing)
		return "", false
	}
	return identity.UserID, true
}
