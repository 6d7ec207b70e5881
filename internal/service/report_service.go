package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// ReportService manages discovery reports from pre-sales meetings.
type ReportService struct {
	reports repository.ReportRepository
}

// ReportInput describes create/update payloads.
type ReportInput struct {
	ClientName      string
	SiteAddress     string
	MeetingDate     time.Time
	Summary         string
	Recommendations string
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// CreateReport records a new discovery report authored by createdBy.
func (s *ReportService) CreateReport(ctx context.Context, createdBy string, input ReportInput) (*domain.DiscoveryReport, error) {
	if err := validateReportInput(input); err != nil {
		return nil, err
	}
	report := &domain.DiscoveryReport{
		ClientName:      strings.TrimSpace(input.ClientName),
		SiteAddress:     strings.TrimSpace(input.SiteAddress),
		MeetingDate:     input.MeetingDate,
		Summary:         strings.TrimSpace(input.Summary),
		Recommendations: strings.TrimSpace(input.Recommendations),
		CreatedBy:       createdBy,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// UpdateReport replaces the editable fields of an existing report.
func (s *ReportService) UpdateReport(ctx context.Context, id string, input ReportInput) (*domain.DiscoveryReport, error) {
	if err := validateReportInput(input); err != nil {
		return nil, err
	}
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	report.ClientName = strings.TrimSpace(input.ClientName)
	report.SiteAddress = strings.TrimSpace(input.SiteAddress)
	report.MeetingDate = input.MeetingDate
	report.Summary = strings.TrimSpace(input.Summary)
	report.Recommendations = strings.TrimSpace(input.Recommendations)
	if err := s.reports.Update(ctx, report); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// DeleteReport removes a report.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("report", map[string]any{"report_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetReport fetches one report.
func (s *ReportService) GetReport(ctx context.Context, id string) (*domain.DiscoveryReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// ListReports returns reports ordered by meeting date.
func (s *ReportService) ListReports(ctx context.Context, limit, offset int) ([]domain.DiscoveryReport, error) {
	reports, err := s.reports.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

func validateReportInput(input ReportInput) error {
	if strings.TrimSpace(input.ClientName) == "" || strings.TrimSpace(input.Summary) == "" {
		return apperrors.NewValidationError("client name and summary required", nil)
	}
	if input.MeetingDate.IsZero() {
		return apperrors.NewValidationError("meeting date required", nil)
	}
	return nil
}
