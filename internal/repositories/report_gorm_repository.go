package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"

	"gorm.io/gorm"
)

const reportOrder = "created_at DESC"

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	table gormTable[models.Report]
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{
		table: gormTable[models.Report]{db: db, entity: "report", pk: "report_id"},
	}
}

// Insert stores a new report. An existing row with the same ID is never
// overwritten.
func (r *GORMReportRepository) Insert(ctx context.Context, report *models.Report) error {
	return r.table.insert(ctx, report.ID, report)
}

// Update writes the mutable columns of the report with the same ID. The
// address and user agent captured at submission are kept.
func (r *GORMReportRepository) Update(ctx context.Context, report *models.Report) error {
	return r.table.update(ctx, report.ID, map[string]any{
		"category_id": report.CategoryID,
		"content":     report.Content,
		"created_at":  report.CreatedAt,
		"status":      report.Status,
		"urgency":     report.Urgency,
	})
}

func (r *GORMReportRepository) Delete(ctx context.Context, id identity.ID) error {
	return r.table.delete(ctx, id)
}

// FindByID returns nil and no error when the report does not exist.
func (r *GORMReportRepository) FindByID(ctx context.Context, id identity.ID) (*models.Report, error) {
	return r.table.findByID(ctx, id)
}

func (r *GORMReportRepository) FindByCategory(ctx context.Context, categoryID identity.ID) ([]models.Report, error) {
	return r.table.find(ctx, reportOrder, "category_id = ?", categoryID)
}

func (r *GORMReportRepository) FindByStatus(ctx context.Context, status string) ([]models.Report, error) {
	return r.table.find(ctx, reportOrder, "status = ?", status)
}

func (r *GORMReportRepository) FindByUrgency(ctx context.Context, urgency int) ([]models.Report, error) {
	return r.table.find(ctx, reportOrder, "urgency = ?", urgency)
}

// FindByDateRange returns the reports created between start and end, both
// inclusive. A start after end is rejected before the store is queried.
func (r *GORMReportRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Report, error) {
	if start.After(end) {
		return nil, fmt.Errorf("start %s is after end %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), ErrInvalidRange)
	}
	return r.table.find(ctx, reportOrder, "created_at BETWEEN ? AND ?", start.UTC(), end.UTC())
}

func (r *GORMReportRepository) FindAll(ctx context.Context) ([]models.Report, error) {
	return r.table.find(ctx, reportOrder, "")
}
