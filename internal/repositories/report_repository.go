package repositories

import (
	"context"
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
)

// ReportRepository defines the interface for report data access.
type ReportRepository interface {
	Insert(ctx context.Context, report *models.Report) error
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id identity.ID) error
	FindByID(ctx context.Context, id identity.ID) (*models.Report, error)
	FindByCategory(ctx context.Context, categoryID identity.ID) ([]models.Report, error)
	FindByStatus(ctx context.Context, status string) ([]models.Report, error)
	FindByUrgency(ctx context.Context, urgency int) ([]models.Report, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Report, error)
	FindAll(ctx context.Context) ([]models.Report, error)
}
