package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// InquiryFilter captures admin search parameters.
type InquiryFilter struct {
	Statuses     []domain.InquiryStatus
	TechnicianID *string
	SearchTerm   *string
	Limit        int
	Offset       int
}

// InquiryRepository encapsulates inquiry persistence. The three Mark*
// methods implement the lifecycle transitions as single conditional
// updates: the WHERE clause carries the expected prior status (and, for the
// gates, the technician binding and code), so only one of two racing
// callers can win. Zero rows affected surfaces as pgx.ErrNoRows.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	ListWithFilter(ctx context.Context, filter InquiryFilter) ([]domain.Inquiry, error)
	MarkAssigned(ctx context.Context, id int64, technicianID, startCode, endCode string) (*domain.Inquiry, error)
	MarkStarted(ctx context.Context, id int64, technicianID, code string) (*domain.Inquiry, error)
	MarkResolved(ctx context.Context, id int64, technicianID, code string) (*domain.Inquiry, error)
}

type inquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository instantiates repository.
func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &inquiryRepository{pool: pool}
}

const inquiryColumns = `id, reference_key, name, email, phone, message, status,
               technician_id, start_code, end_code, started_at, completed_at,
               created_at, updated_at`

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        INSERT INTO inquiries (reference_key, name, email, phone, message, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		inquiry.ReferenceKey,
		inquiry.Name,
		inquiry.Email,
		inquiry.Phone,
		inquiry.Message,
		inquiry.Status,
	).Scan(&inquiry.ID, &inquiry.CreatedAt, &inquiry.UpdatedAt)
}

func (r *inquiryRepository) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	query := fmt.Sprintf(`SELECT %s FROM inquiries WHERE id=$1`, inquiryColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *inquiryRepository) MarkAssigned(ctx context.Context, id int64, technicianID, startCode, endCode string) (*domain.Inquiry, error) {
	query := fmt.Sprintf(`
        UPDATE inquiries
        SET status=$1, technician_id=$2, start_code=$3, end_code=$4, updated_at=NOW()
        WHERE id=$5 AND status=$6
        RETURNING %s`, inquiryColumns)
	return r.fetchSingle(ctx, query,
		domain.InquiryStatusAssigned, technicianID, startCode, endCode,
		id, domain.InquiryStatusPending)
}

func (r *inquiryRepository) MarkStarted(ctx context.Context, id int64, technicianID, code string) (*domain.Inquiry, error) {
	query := fmt.Sprintf(`
        UPDATE inquiries
        SET status=$1, started_at=NOW(), start_code=NULL, updated_at=NOW()
        WHERE id=$2 AND status=$3 AND technician_id=$4 AND start_code=$5
        RETURNING %s`, inquiryColumns)
	return r.fetchSingle(ctx, query,
		domain.InquiryStatusInProgress,
		id, domain.InquiryStatusAssigned, technicianID, code)
}

func (r *inquiryRepository) MarkResolved(ctx context.Context, id int64, technicianID, code string) (*domain.Inquiry, error) {
	query := fmt.Sprintf(`
        UPDATE inquiries
        SET status=$1, completed_at=NOW(), end_code=NULL, updated_at=NOW()
        WHERE id=$2 AND status=$3 AND technician_id=$4 AND end_code=$5
        RETURNING %s`, inquiryColumns)
	return r.fetchSingle(ctx, query,
		domain.InquiryStatusResolved,
		id, domain.InquiryStatusInProgress, technicianID, code)
}

func (r *inquiryRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&inquiry.ID,
		&inquiry.ReferenceKey,
		&inquiry.Name,
		&inquiry.Email,
		&inquiry.Phone,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.TechnicianID,
		&inquiry.StartCode,
		&inquiry.EndCode,
		&inquiry.StartedAt,
		&inquiry.CompletedAt,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListWithFilter(ctx context.Context, filter InquiryFilter) ([]domain.Inquiry, error) {
	base := fmt.Sprintf(`SELECT %s FROM inquiries`, inquiryColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("technician_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(email) LIKE %s OR LOWER(message) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInquiries(rows)
}

func scanInquiries(rows pgx.Rows) ([]domain.Inquiry, error) {
	var result []domain.Inquiry
	for rows.Next() {
		var inquiry domain.Inquiry
		if err := rows.Scan(
			&inquiry.ID,
			&inquiry.ReferenceKey,
			&inquiry.Name,
			&inquiry.Email,
			&inquiry.Phone,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.TechnicianID,
			&inquiry.StartCode,
			&inquiry.EndCode,
			&inquiry.StartedAt,
			&inquiry.CompletedAt,
			&inquiry.CreatedAt,
			&inquiry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, inquiry)
	}
	return result, rows.Err()
}
