package domain

import "time"

// InquiryStatus enumerates job lifecycle states.
type InquiryStatus string

const (
	InquiryStatusPending    InquiryStatus = "PENDING"
	InquiryStatusAssigned   InquiryStatus = "ASSIGNED"
	InquiryStatusInProgress InquiryStatus = "IN_PROGRESS"
	InquiryStatusResolved   InquiryStatus = "RESOLVED"
)

// Inquiry is the aggregate for customer service requests. It doubles as the
// job record once a technician is dispatched: ASSIGNED rows carry the
// technician binding plus the two single-use control codes, and the gate
// transitions stamp StartedAt/CompletedAt.
type Inquiry struct {
	ID           int64
	ReferenceKey string
	Name         string
	Email        string
	Phone        string
	Message      string
	Status       InquiryStatus
	TechnicianID *string
	StartCode    *string
	EndCode      *string
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
