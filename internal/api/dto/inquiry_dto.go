package dto

import (
	"time"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// SubmitInquiryRequest is the public contact form payload.
type SubmitInquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// AssignRequest binds a technician to an inquiry.
type AssignRequest struct {
	TechnicianID string `json:"technician_id" validate:"required,uuid4"`
}

// InquirySummary is the admin list projection. Codes stay server-side.
type InquirySummary struct {
	ID           int64                `json:"id"`
	ReferenceKey string               `json:"reference_key"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Status       domain.InquiryStatus `json:"status"`
	TechnicianID *string              `json:"technician_id,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// InquiryDetailResponse is the admin detail projection, including the
// control codes the admin reads out to the client and technician.
type InquiryDetailResponse struct {
	ID           int64                `json:"id"`
	ReferenceKey string               `json:"reference_key"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone,omitempty"`
	Message      string               `json:"message"`
	Status       domain.InquiryStatus `json:"status"`
	TechnicianID *string              `json:"technician_id,omitempty"`
	StartCode    *string              `json:"start_code,omitempty"`
	EndCode      *string              `json:"end_code,omitempty"`
	StartedAt    *time.Time           `json:"started_at,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// SubmitInquiryResponse echoes the customer-facing reference.
type SubmitInquiryResponse struct {
	ReferenceKey string               `json:"reference_key"`
	Status       domain.InquiryStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}
