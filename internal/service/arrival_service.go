package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/events"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// ArrivalService records technician on-site presence. The log is supporting
// evidence only; it never drives a lifecycle transition and the work order
// string is not cross-checked against dispatch codes.
type ArrivalService struct {
	arrivals   repository.ArrivalRepository
	dispatcher events.Dispatcher
}

// ArrivalInput describes a device-supplied confirmation.
type ArrivalInput struct {
	WorkOrder string
	Code      string
	Latitude  float64
	Longitude float64
}

// NewArrivalService constructs the service.
func NewArrivalService(arrivals repository.ArrivalRepository, dispatcher events.Dispatcher) *ArrivalService {
	return &ArrivalService{arrivals: arrivals, dispatcher: dispatcher}
}

// ConfirmArrival appends one audit row for the caller.
func (s *ArrivalService) ConfirmArrival(ctx context.Context, callerID string, input ArrivalInput) (*domain.ArrivalConfirmation, error) {
	workOrder := strings.TrimSpace(input.WorkOrder)
	code := strings.TrimSpace(input.Code)
	if workOrder == "" || code == "" {
		return nil, apperrors.NewValidationError("work order and code required", nil)
	}

	record := &domain.ArrivalConfirmation{
		TechnicianID: callerID,
		WorkOrder:    workOrder,
		Code:         code,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
	if err := s.arrivals.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventArrivalConfirmed,
			Actor:     events.Actor{Role: domain.UserRoleTechnician, UserID: &callerID},
			Timestamp: time.Now(),
			Payload: events.ArrivalConfirmedPayload{
				TechnicianID: callerID,
				WorkOrder:    workOrder,
				Latitude:     input.Latitude,
				Longitude:    input.Longitude,
			},
		})
	}
	return record, nil
}

// ListArrivals returns the caller's recent confirmations.
func (s *ArrivalService) ListArrivals(ctx context.Context, technicianID string, limit, offset int) ([]domain.ArrivalConfirmation, error) {
	records, err := s.arrivals.ListByTechnician(ctx, technicianID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}
