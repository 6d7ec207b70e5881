package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/events"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// JobService owns the two code-gated lifecycle transitions. Checks run in a
// fixed order: the job must exist, the caller must be the bound technician,
// the job must be in the expected state, and only then is the code compared.
// The winning write is a single conditional update that also clears the
// consumed code, so a replayed code or a lost race surfaces as Conflict.
type JobService struct {
	inquiries  repository.InquiryRepository
	dispatcher events.Dispatcher
}

// JobDependencies bundles repositories.
type JobDependencies struct {
	InquiryRepo repository.InquiryRepository
	Dispatcher  events.Dispatcher
}

// NewJobService creates the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		inquiries:  deps.InquiryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// StartJob transitions jobID from ASSIGNED to IN_PROGRESS when callerID is
// the assigned technician and code matches the start code.
func (s *JobService) StartJob(ctx context.Context, jobID int64, code, callerID string) (*domain.Inquiry, error) {
	inquiry, err := s.loadForTechnician(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	if inquiry.Status != domain.InquiryStatusAssigned {
		return nil, apperrors.NewConflict("job is not awaiting start", map[string]any{"status": inquiry.Status})
	}
	if inquiry.StartCode == nil || *inquiry.StartCode != code {
		return nil, apperrors.NewInvalidCode("invalid start code")
	}

	updated, err := s.inquiries.MarkStarted(ctx, jobID, callerID, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("job was started by a concurrent request", nil)
		}
		return nil, apperrors.MapError(err)
	}

	startedAt := time.Now()
	if updated.StartedAt != nil {
		startedAt = *updated.StartedAt
	}
	s.publish(ctx, events.Event{
		Type:      events.EventJobStarted,
		InquiryID: updated.ID,
		Actor:     events.Actor{Role: domain.UserRoleTechnician, UserID: &callerID},
		Payload:   events.JobStartedPayload{TechnicianID: callerID, StartedAt: startedAt},
	})
	return updated, nil
}

// CompleteJob transitions jobID from IN_PROGRESS to RESOLVED when callerID
// is the assigned technician and code matches the completion code handed
// over by the client on site.
func (s *JobService) CompleteJob(ctx context.Context, jobID int64, code, callerID string) (*domain.Inquiry, error) {
	inquiry, err := s.loadForTechnician(ctx, jobID, callerID)
	if err != nil {
		return nil, err
	}
	if inquiry.Status != domain.InquiryStatusInProgress {
		return nil, apperrors.NewConflict("job is not in progress", map[string]any{"status": inquiry.Status})
	}
	if inquiry.EndCode == nil || *inquiry.EndCode != code {
		return nil, apperrors.NewInvalidCode("invalid completion code")
	}

	updated, err := s.inquiries.MarkResolved(ctx, jobID, callerID, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("job was completed by a concurrent request", nil)
		}
		return nil, apperrors.MapError(err)
	}

	completedAt := time.Now()
	if updated.CompletedAt != nil {
		completedAt = *updated.CompletedAt
	}
	s.publish(ctx, events.Event{
		Type:      events.EventJobCompleted,
		InquiryID: updated.ID,
		Actor:     events.Actor{Role: domain.UserRoleTechnician, UserID: &callerID},
		Payload:   events.JobCompletedPayload{TechnicianID: callerID, CompletedAt: completedAt},
	})
	return updated, nil
}

// ListJobsForTechnician returns the caller's assigned jobs.
func (s *JobService) ListJobsForTechnician(ctx context.Context, technicianID string, limit, offset int) ([]domain.Inquiry, error) {
	jobs, err := s.inquiries.ListWithFilter(ctx, repository.InquiryFilter{
		TechnicianID: &technicianID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return jobs, nil
}

// loadForTechnician fetches the job and enforces the assignee binding. The
// code is never compared for a caller who is not the bound technician.
func (s *JobService) loadForTechnician(ctx context.Context, jobID int64, callerID string) (*domain.Inquiry, error) {
	inquiry, err := s.inquiries.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
		}
		return nil, apperrors.MapError(err)
	}
	if inquiry.TechnicianID == nil || *inquiry.TechnicianID != callerID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return inquiry, nil
}

func (s *JobService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
