package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// ArrivalRepository manages the append-only arrival audit log.
type ArrivalRepository interface {
	Create(ctx context.Context, record *domain.ArrivalConfirmation) error
	ListByTechnician(ctx context.Context, technicianID string, limit, offset int) ([]domain.ArrivalConfirmation, error)
}

type arrivalRepository struct {
	pool *pgxpool.Pool
}

// NewArrivalRepository instantiates repository.
func NewArrivalRepository(pool *pgxpool.Pool) ArrivalRepository {
	return &arrivalRepository{pool: pool}
}

func (r *arrivalRepository) Create(ctx context.Context, record *domain.ArrivalConfirmation) error {
	const query = `
        INSERT INTO arrival_confirmations (technician_id, work_order, code, latitude, longitude)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.TechnicianID,
		record.WorkOrder,
		record.Code,
		record.Latitude,
		record.Longitude,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *arrivalRepository) ListByTechnician(ctx context.Context, technicianID string, limit, offset int) ([]domain.ArrivalConfirmation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, technician_id, work_order, code, latitude, longitude, created_at
        FROM arrival_confirmations
        WHERE technician_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, technicianID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArrivals(rows)
}

func scanArrivals(rows pgx.Rows) ([]domain.ArrivalConfirmation, error) {
	var result []domain.ArrivalConfirmation
	for rows.Next() {
		var record domain.ArrivalConfirmation
		if err := rows.Scan(
			&record.ID,
			&record.TechnicianID,
			&record.WorkOrder,
			&record.Code,
			&record.Latitude,
			&record.Longitude,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
