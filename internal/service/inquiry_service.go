package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/events"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

// referenceAlphabet avoids lookalike characters in customer-facing keys.
const referenceAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// InquiryService handles public intake and admin views over inquiries.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	dispatcher events.Dispatcher
}

// InquiryDependencies bundles repositories.
type InquiryDependencies struct {
	InquiryRepo repository.InquiryRepository
	Dispatcher  events.Dispatcher
}

// InquirySubmitInput describes the public contact form payload.
type InquirySubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// InquiryListFilter describes admin listing filters.
type InquiryListFilter struct {
	Statuses     []domain.InquiryStatus
	TechnicianID *string
	SearchTerm   *string
	Limit        int
	Offset       int
}

// NewInquiryService constructs the service.
func NewInquiryService(deps InquiryDependencies) *InquiryService {
	return &InquiryService{
		inquiries:  deps.InquiryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// SubmitInquiry records a public service request as PENDING.
func (s *InquiryService) SubmitInquiry(ctx context.Context, input InquirySubmitInput) (*domain.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, apperrors.NewValidationError("name, email, message required", nil)
	}

	inquiry := &domain.Inquiry{
		ReferenceKey: generateReferenceKey(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Message:      message,
		Status:       domain.InquiryStatusPending,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventInquiryReceived,
		InquiryID: inquiry.ID,
		Actor:     events.Actor{},
		Payload: events.InquiryReceivedPayload{
			ReferenceKey: inquiry.ReferenceKey,
			Name:         inquiry.Name,
			Email:        inquiry.Email,
		},
	})
	return inquiry, nil
}

// ListInquiries returns inquiries matching the admin filter.
func (s *InquiryService) ListInquiries(ctx context.Context, filter InquiryListFilter) ([]domain.Inquiry, error) {
	result, err := s.inquiries.ListWithFilter(ctx, repository.InquiryFilter{
		Statuses:     filter.Statuses,
		TechnicianID: filter.TechnicianID,
		SearchTerm:   filter.SearchTerm,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// GetInquiry fetches one inquiry by id.
func (s *InquiryService) GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error) {
	inquiry, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inquiry", map[string]any{"inquiry_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return inquiry, nil
}

func generateReferenceKey() string {
	key, err := gonanoid.Generate(referenceAlphabet, 8)
	if err != nil {
		// gonanoid only fails when the system entropy source does; fall back
		// to the uuid path rather than dropping the submission.
		return "RG-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	return "RG-" + key
}

func (s *InquiryService) publish(ctx context.Context, event events.Event) {
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
