package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO reports (type, date, employee_id, object_key) VALUES ($1, $2, $3, $4) RETURNING id`,
		rep.Type, rep.Date, rep.EmployeeID, rep.ObjectKey,
	).Scan(&rep.ID)
	return errors.Wrap(err, "création rapport")
}

func (r *ReportRepository) List(ctx context.Context, limit int) ([]models.Report, error) {
	reports := []models.Report{}
	err := r.db.SelectContext(ctx, &reports,
		`SELECT id, type, date, employee_id, object_key FROM reports ORDER BY date DESC LIMIT $1`, limit)
	return reports, errors.Wrap(err, "liste rapports")
}
