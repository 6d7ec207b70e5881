package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pekay23/raymond-gray-platform/internal/api/dto"
	"github.com/pekay23/raymond-gray-platform/internal/auth"
	"github.com/pekay23/raymond-gray-platform/internal/service"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// ReportsHandler manages discovery report CRUD (admin only).
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Create POST /reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	req, err := parseReportRequest(c)
	if err != nil {
		return err
	}

	report, err := h.reports.CreateReport(c.Context(), principal.ID(), reportInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// List GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	page := parseIntDefault(c.Query("page"), 1)
	pageSize := parseIntDefault(c.Query("page_size"), 20)

	reports, err := h.reports.ListReports(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, dto.NewReportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// Update PUT /reports/:id.
func (h *ReportsHandler) Update(c *fiber.Ctx) error {
	req, err := parseReportRequest(c)
	if err != nil {
		return err
	}

	report, err := h.reports.UpdateReport(c.Context(), c.Params("id"), reportInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// Delete DELETE /reports/:id.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	if err := h.reports.DeleteReport(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseReportRequest(c *fiber.Ctx) (dto.ReportRequest, error) {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

func reportInput(req dto.ReportRequest) service.ReportInput {
	return service.ReportInput{
		ClientName:      req.ClientName,
		SiteAddress:     req.SiteAddress,
		MeetingDate:     req.MeetingDate,
		Summary:         req.Summary,
		Recommendations: req.Recommendations,
	}
}
