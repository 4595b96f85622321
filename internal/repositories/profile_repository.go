package repositories

import (
	"context"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
)

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	Insert(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, id identity.ID) error
	FindByID(ctx context.Context, id identity.ID) (*models.Profile, error)
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindByUsername(ctx context.Context, username string) (*models.Profile, error)
	FindByActivationToken(ctx context.Context, token string) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
}
