package repositories

import (
	"context"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Insert(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id identity.ID) error
	FindByID(ctx context.Context, id identity.ID) (*models.Comment, error)
	FindByReport(ctx context.Context, reportID identity.ID) ([]models.Comment, error)
	FindByProfile(ctx context.Context, profileID identity.ID) ([]models.Comment, error)
	FindAll(ctx context.Context) ([]models.Comment, error)
}
