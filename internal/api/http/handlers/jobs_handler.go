package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pekay23/raymond-gray-platform/internal/api/dto"
	"github.com/pekay23/raymond-gray-platform/internal/auth"
	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/service"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// JobsHandler exposes the technician-facing job endpoints.
type JobsHandler struct {
	jobs     *service.JobService
	arrivals *service.ArrivalService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService, arrivalService *service.ArrivalService) *JobsHandler {
	return &JobsHandler{jobs: jobService, arrivals: arrivalService}
}

// List GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page := parseIntDefault(c.Query("page"), 1)
	pageSize := parseIntDefault(c.Query("page_size"), 20)

	jobs, err := h.jobs.ListJobsForTechnician(c.Context(), principal.ID(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Start POST /jobs/:id/start.
func (h *JobsHandler) Start(c *fiber.Ctx) error {
	return h.gate(c, h.jobs.StartJob)
}

// Complete POST /jobs/:id/complete.
func (h *JobsHandler) Complete(c *fiber.Ctx) error {
	return h.gate(c, h.jobs.CompleteJob)
}

// ConfirmArrival POST /jobs/arrival.
func (h *JobsHandler) ConfirmArrival(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ArrivalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	record, err := h.arrivals.ConfirmArrival(c.Context(), principal.ID(), service.ArrivalInput{
		WorkOrder: req.WorkOrder,
		Code:      req.Code,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ArrivalResponse{
		ID:        record.ID,
		WorkOrder: record.WorkOrder,
		Latitude:  record.Latitude,
		Longitude: record.Longitude,
		CreatedAt: record.CreatedAt,
	}})
}

func (h *JobsHandler) gate(c *fiber.Ctx, transition func(ctx context.Context, jobID int64, code, callerID string) (*domain.Inquiry, error)) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.GateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	job, err := transition(c.Context(), id, req.Code, principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

func jobResponse(job *domain.Inquiry) dto.JobResponse {
	return dto.JobResponse{
		ID:           job.ID,
		ReferenceKey: job.ReferenceKey,
		Name:         job.Name,
		Phone:        job.Phone,
		Message:      job.Message,
		Status:       job.Status,
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
		CreatedAt:    job.CreatedAt,
	}
}
