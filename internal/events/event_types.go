package events

import (
	"time"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInquiryReceived  EventType = "inquiry_received"
	EventJobAssigned      EventType = "job_assigned"
	EventJobStarted       EventType = "job_started"
	EventJobCompleted     EventType = "job_completed"
	EventArrivalConfirmed EventType = "arrival_confirmed"
)

// Actor encapsulates actor metadata for an event. A nil UserID marks the
// public intake path.
type Actor struct {
	Role   domain.UserRole `json:"role,omitempty"`
	UserID *string         `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	InquiryID int64       `json:"inquiry_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// InquiryReceivedPayload payload.
type InquiryReceivedPayload struct {
	ReferenceKey string `json:"reference_key"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// JobAssignedPayload payload.
type JobAssignedPayload struct {
	TechnicianID string `json:"technician_id"`
}

// JobStartedPayload payload.
type JobStartedPayload struct {
	TechnicianID string    `json:"technician_id"`
	StartedAt    time.Time `json:"started_at"`
}

// JobCompletedPayload payload.
type JobCompletedPayload struct {
	TechnicianID string    `json:"technician_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ArrivalConfirmedPayload payload.
type ArrivalConfirmedPayload struct {
	TechnicianID string  `json:"technician_id"`
	WorkOrder    string  `json:"work_order"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}
