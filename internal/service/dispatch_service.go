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

// DispatchService binds technicians to inquiries and mints the two
// single-use control codes.
type DispatchService struct {
	inquiries  repository.InquiryRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// DispatchDependencies bundles repositories.
type DispatchDependencies struct {
	InquiryRepo repository.InquiryRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewDispatchService creates the service.
func NewDispatchService(deps DispatchDependencies) *DispatchService {
	return &DispatchService{
		inquiries:  deps.InquiryRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Assign dispatches technicianID to the inquiry and mints its start and
// completion codes. Assignment is valid only from PENDING; an inquiry that
// already carries a technician yields Conflict rather than a silent
// overwrite.
func (s *DispatchService) Assign(ctx context.Context, actor *domain.User, inquiryID int64, technicianID string) (*domain.Inquiry, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("admin required")
	}
	if actor.Role != domain.UserRoleAdmin {
		return nil, apperrors.NewForbidden("insufficient role for dispatch")
	}

	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if technician.Role != domain.UserRoleTechnician {
		return nil, apperrors.NewValidationError("user is not a technician", map[string]any{"technician_id": technicianID})
	}
	if technician.Status != domain.UserStatusActive {
		return nil, apperrors.NewConflict("technician suspended", map[string]any{"technician_id": technicianID})
	}

	startCode, endCode, err := mintCodePair()
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	inquiry, err := s.inquiries.MarkAssigned(ctx, inquiryID, technician.ID, startCode, endCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.diagnoseAssignFailure(ctx, inquiryID)
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventJobAssigned,
		InquiryID: inquiry.ID,
		Actor:     events.Actor{Role: domain.UserRoleAdmin, UserID: &actor.ID},
		Payload:   events.JobAssignedPayload{TechnicianID: technician.ID},
	})
	return inquiry, nil
}

// diagnoseAssignFailure distinguishes a missing inquiry from one that has
// already moved past PENDING.
func (s *DispatchService) diagnoseAssignFailure(ctx context.Context, inquiryID int64) error {
	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("inquiry", map[string]any{"inquiry_id": inquiryID})
		}
		return apperrors.MapError(err)
	}
	return apperrors.NewConflict("inquiry already dispatched", map[string]any{
		"inquiry_id": inquiryID,
		"status":     inquiry.Status,
	})
}

func (s *DispatchService) publish(ctx context.Context, event events.Event) {
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
