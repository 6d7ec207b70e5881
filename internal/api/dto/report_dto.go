package dto

import (
	"time"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// ReportRequest is the create/update payload for discovery reports.
type ReportRequest struct {
	ClientName      string    `json:"client_name" validate:"required"`
	SiteAddress     string    `json:"site_address"`
	MeetingDate     time.Time `json:"meeting_date" validate:"required"`
	Summary         string    `json:"summary" validate:"required"`
	Recommendations string    `json:"recommendations"`
}

// ReportResponse projects a discovery report.
type ReportResponse struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	SiteAddress     string    `json:"site_address,omitempty"`
	MeetingDate     time.Time `json:"meeting_date"`
	Summary         string    `json:"summary"`
	Recommendations string    `json:"recommendations,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewReportResponse maps the domain model.
func NewReportResponse(report *domain.DiscoveryReport) ReportResponse {
	return ReportResponse{
		ID:              report.ID,
		ClientName:      report.ClientName,
		SiteAddress:     report.SiteAddress,
		MeetingDate:     report.MeetingDate,
		Summary:         report.Summary,
		Recommendations: report.Recommendations,
		CreatedBy:       report.CreatedBy,
		CreatedAt:       report.CreatedAt,
		UpdatedAt:       report.UpdatedAt,
	}
}
