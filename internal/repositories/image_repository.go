package repositories

import (
	"context"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
)

// ImageRepository defines the interface for image data access.
type ImageRepository interface {
	Insert(ctx context.Context, image *models.Image) error
	Update(ctx context.Context, image *models.Image) error
	Delete(ctx context.Context, id identity.ID) error
	FindByID(ctx context.Context, id identity.ID) (*models.Image, error)
	FindByReport(ctx context.Context, reportID identity.ID) ([]models.Image, error)
	FindAll(ctx context.Context) ([]models.Image, error)
}
