package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
)

// fakeInquiryRepo mirrors the Postgres repository semantics, including the
// conditional-update contract: a Mark* call whose WHERE-equivalent predicate
// does not hold returns pgx.ErrNoRows.
type fakeInquiryRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*domain.Inquiry
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{items: make(map[int64]*domain.Inquiry)}
}

func (r *fakeInquiryRepo) seed(inquiry domain.Inquiry) *domain.Inquiry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inquiry.ID == 0 {
		r.nextID++
		inquiry.ID = r.nextID
	} else if inquiry.ID > r.nextID {
		r.nextID = inquiry.ID
	}
	stored := inquiry
	r.items[stored.ID] = &stored
	return &stored
}

func (r *fakeInquiryRepo) Create(_ context.Context, inquiry *domain.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inquiry.ID = r.nextID
	inquiry.CreatedAt = time.Now()
	inquiry.UpdatedAt = inquiry.CreatedAt
	stored := *inquiry
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakeInquiryRepo) GetByID(_ context.Context, id int64) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeInquiryRepo) ListWithFilter(_ context.Context, filter repository.InquiryFilter) ([]domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Inquiry
	for _, stored := range r.items {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, stored.Status) {
			continue
		}
		if filter.TechnicianID != nil {
			if stored.TechnicianID == nil || *stored.TechnicianID != *filter.TechnicianID {
				continue
			}
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if term != "" &&
				!strings.Contains(strings.ToLower(stored.Name), term) &&
				!strings.Contains(strings.ToLower(stored.Email), term) &&
				!strings.Contains(strings.ToLower(stored.Message), term) {
				continue
			}
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *fakeInquiryRepo) MarkAssigned(_ context.Context, id int64, technicianID, startCode, endCode string) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok || stored.Status != domain.InquiryStatusPending {
		return nil, pgx.ErrNoRows
	}
	stored.Status = domain.InquiryStatusAssigned
	stored.TechnicianID = &technicianID
	stored.StartCode = &startCode
	stored.EndCode = &endCode
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func (r *fakeInquiryRepo) MarkStarted(_ context.Context, id int64, technicianID, code string) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok ||
		stored.Status != domain.InquiryStatusAssigned ||
		stored.TechnicianID == nil || *stored.TechnicianID != technicianID ||
		stored.StartCode == nil || *stored.StartCode != code {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	stored.Status = domain.InquiryStatusInProgress
	stored.StartedAt = &now
	stored.StartCode = nil
	stored.UpdatedAt = now
	copied := *stored
	return &copied, nil
}

func (r *fakeInquiryRepo) MarkResolved(_ context.Context, id int64, technicianID, code string) (*domain.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok ||
		stored.Status != domain.InquiryStatusInProgress ||
		stored.TechnicianID == nil || *stored.TechnicianID != technicianID ||
		stored.EndCode == nil || *stored.EndCode != code {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	stored.Status = domain.InquiryStatusResolved
	stored.CompletedAt = &now
	stored.EndCode = nil
	stored.UpdatedAt = now
	copied := *stored
	return &copied, nil
}

func containsStatus(statuses []domain.InquiryStatus, status domain.InquiryStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	mu    sync.Mutex
	items map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) seed(user domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stored := user
	r.items[stored.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeArrivalRepo struct {
	mu    sync.Mutex
	items []domain.ArrivalConfirmation
}

func newFakeArrivalRepo() *fakeArrivalRepo {
	return &fakeArrivalRepo{}
}

func (r *fakeArrivalRepo) Create(_ context.Context, record *domain.ArrivalConfirmation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
	r.items = append(r.items, *record)
	return nil
}

func (r *fakeArrivalRepo) ListByTechnician(_ context.Context, technicianID string, limit, offset int) ([]domain.ArrivalConfirmation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ArrivalConfirmation
	for _, record := range r.items {
		if record.TechnicianID == technicianID {
			result = append(result, record)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

type fakeReportRepo struct {
	mu    sync.Mutex
	items map[string]*domain.DiscoveryReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{items: make(map[string]*domain.DiscoveryReport)}
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.DiscoveryReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = uuid.NewString()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	stored := *report
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakeReportRepo) Update(_ context.Context, report *domain.DiscoveryReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[report.ID]; !ok {
		return pgx.ErrNoRows
	}
	report.UpdatedAt = time.Now()
	stored := *report
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.DiscoveryReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeReportRepo) List(_ context.Context, limit, offset int) ([]domain.DiscoveryReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.DiscoveryReport
	for _, stored := range r.items {
		result = append(result, *stored)
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
