package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pekay23/raymond-gray-platform/internal/api/dto"
	"github.com/pekay23/raymond-gray-platform/internal/auth"
	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/service"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// InquiriesHandler manages the public intake endpoint and the admin views.
type InquiriesHandler struct {
	inquiries *service.InquiryService
	dispatch  *service.DispatchService
}

// NewInquiriesHandler constructs handler.
func NewInquiriesHandler(inquiryService *service.InquiryService, dispatchService *service.DispatchService) *InquiriesHandler {
	return &InquiriesHandler{inquiries: inquiryService, dispatch: dispatchService}
}

// Submit POST /inquiries (public).
func (h *InquiriesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	inquiry, err := h.inquiries.SubmitInquiry(c.Context(), service.InquirySubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SubmitInquiryResponse{
		ReferenceKey: inquiry.ReferenceKey,
		Status:       inquiry.Status,
		CreatedAt:    inquiry.CreatedAt,
	}})
}

// List GET /inquiries (admin).
func (h *InquiriesHandler) List(c *fiber.Ctx) error {
	filter := parseInquiryQuery(c)
	inquiries, err := h.inquiries.ListInquiries(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.InquirySummary, 0, len(inquiries))
	for i := range inquiries {
		items = append(items, inquirySummary(&inquiries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /inquiries/:id (admin).
func (h *InquiriesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	inquiry, err := h.inquiries.GetInquiry(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquiryDetail(inquiry)})
}

// Assign PATCH /inquiries/:id/assign (admin).
func (h *InquiriesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	inquiry, err := h.dispatch.Assign(c.Context(), principal.User, id, req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquiryDetail(inquiry)})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}

func parseInquiryQuery(c *fiber.Ctx) service.InquiryListFilter {
	filter := service.InquiryListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.InquiryStatus(strings.TrimSpace(part)))
		}
	}
	if tech := c.Query("technician_id"); tech != "" {
		filter.TechnicianID = &tech
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseIntDefault(c.Query("page"), 1)
	pageSize := parseIntDefault(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseIntDefault(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func inquirySummary(inquiry *domain.Inquiry) dto.InquirySummary {
	return dto.InquirySummary{
		ID:           inquiry.ID,
		ReferenceKey: inquiry.ReferenceKey,
		Name:         inquiry.Name,
		Email:        inquiry.Email,
		Status:       inquiry.Status,
		TechnicianID: inquiry.TechnicianID,
		CreatedAt:    inquiry.CreatedAt,
		UpdatedAt:    inquiry.UpdatedAt,
	}
}

func inquiryDetail(inquiry *domain.Inquiry) dto.InquiryDetailResponse {
	return dto.InquiryDetailResponse{
		ID:           inquiry.ID,
		ReferenceKey: inquiry.ReferenceKey,
		Name:         inquiry.Name,
		Email:        inquiry.Email,
		Phone:        inquiry.Phone,
		Message:      inquiry.Message,
		Status:       inquiry.Status,
		TechnicianID: inquiry.TechnicianID,
		StartCode:    inquiry.StartCode,
		EndCode:      inquiry.EndCode,
		StartedAt:    inquiry.StartedAt,
		CompletedAt:  inquiry.CompletedAt,
		CreatedAt:    inquiry.CreatedAt,
		UpdatedAt:    inquiry.UpdatedAt,
	}
}
