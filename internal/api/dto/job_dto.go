package dto

import (
	"time"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// GateRequest carries the code for a start or completion gate call.
type GateRequest struct {
	Code string `json:"code" validate:"required,len=4,numeric"`
}

// ArrivalRequest is the device-supplied arrival confirmation payload.
type ArrivalRequest struct {
	WorkOrder string  `json:"work_order" validate:"required"`
	Code      string  `json:"code" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// JobResponse is the technician-facing job projection. The technician sees
// whether codes are still outstanding but never the code values.
type JobResponse struct {
	ID           int64                `json:"id"`
	ReferenceKey string               `json:"reference_key"`
	Name         string               `json:"name"`
	Phone        string               `json:"phone,omitempty"`
	Message      string               `json:"message"`
	Status       domain.InquiryStatus `json:"status"`
	StartedAt    *time.Time           `json:"started_at,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ArrivalResponse echoes the persisted audit row.
type ArrivalResponse struct {
	ID        string    `json:"id"`
	WorkOrder string    `json:"work_order"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}
