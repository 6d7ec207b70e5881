package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pekay23/raymond-gray-platform/internal/domain"
)

// ReportRepository handles discovery report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.DiscoveryReport) error
	Update(ctx context.Context, report *domain.DiscoveryReport) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.DiscoveryReport, error)
	List(ctx context.Context, limit, offset int) ([]domain.DiscoveryReport, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.DiscoveryReport) error {
	const query = `
        INSERT INTO discovery_reports (client_name, site_address, meeting_date, summary, recommendations, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		report.ClientName,
		report.SiteAddress,
		report.MeetingDate,
		report.Summary,
		report.Recommendations,
		report.CreatedBy,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) Update(ctx context.Context, report *domain.DiscoveryReport) error {
	const query = `
        UPDATE discovery_reports
        SET client_name=$1, site_address=$2, meeting_date=$3, summary=$4, recommendations=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		report.ClientName,
		report.SiteAddress,
		report.MeetingDate,
		report.Summary,
		report.Recommendations,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM discovery_reports WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.DiscoveryReport, error) {
	const query = `
        SELECT id, client_name, site_address, meeting_date, summary, recommendations, created_by, created_at, updated_at
        FROM discovery_reports WHERE id=$1`
	var report domain.DiscoveryReport
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.ClientName,
		&report.SiteAddress,
		&report.MeetingDate,
		&report.Summary,
		&report.Recommendations,
		&report.CreatedBy,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]domain.DiscoveryReport, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, client_name, site_address, meeting_date, summary, recommendations, created_by, created_at, updated_at
        FROM discovery_reports
        ORDER BY meeting_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DiscoveryReport
	for rows.Next() {
		var report domain.DiscoveryReport
		if err := rows.Scan(
			&report.ID,
			&report.ClientName,
			&report.SiteAddress,
			&report.MeetingDate,
			&report.Summary,
			&report.Recommendations,
			&report.CreatedBy,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
