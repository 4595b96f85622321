package repositories

import (
	"context"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"

	"gorm.io/gorm"
)

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	table gormTable[models.Image]
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{
		table: gormTable[models.Image]{db: db, entity: "image", pk: "image_id"},
	}
}

func (r *GORMImageRepository) Insert(ctx context.Context, image *models.Image) error {
	return r.table.insert(ctx, image.ID, image)
}

func (r *GORMImageRepository) Update(ctx context.Context, image *models.Image) error {
	return r.table.update(ctx, image.ID, map[string]any{
		"media_ref": image.MediaRef,
		"lat":       image.Lat,
		"long":      image.Long,
	})
}

func (r *GORMImageRepository) Delete(ctx context.Context, id identity.ID) error {
	return r.table.delete(ctx, id)
}

func (r *GORMImageRepository) FindByID(ctx context.Context, id identity.ID) (*models.Image, error) {
	return r.table.findByID(ctx, id)
}

func (r *GORMImageRepository) FindByReport(ctx context.Context, reportID identity.ID) ([]models.Image, error) {
	return r.table.find(ctx, "", "report_id = ?", reportID)
}

func (r *GORMImageRepository) FindAll(ctx context.Context) ([]models.Image, error) {
	return r.table.find(ctx, "", "")
}
