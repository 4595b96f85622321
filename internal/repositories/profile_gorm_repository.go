package repositories

import (
	"context"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"

	"gorm.io/gorm"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	table gormTable[models.Profile]
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		table: gormTable[models.Profile]{db: db, entity: "profile", pk: "profile_id"},
	}
}

func (r *GORMProfileRepository) Insert(ctx context.Context, profile *models.Profile) error {
	return r.table.insert(ctx, profile.ID, profile)
}

// Update persists activation and password changes. Username, email, salt and
// the admin flag are fixed at creation.
func (r *GORMProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.table.update(ctx, profile.ID, map[string]any{
		"activation_token": profile.ActivationToken,
		"password_hash":    profile.PasswordHash,
	})
}

func (r *GORMProfileRepository) Delete(ctx context.Context, id identity.ID) error {
	return r.table.delete(ctx, id)
}

func (r *GORMProfileRepository) FindByID(ctx context.Context, id identity.ID) (*models.Profile, error) {
	return r.table.findByID(ctx, id)
}

// FindByEmail expects an already normalized address.
func (r *GORMProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.table.first(ctx, "email = ?", email)
}

func (r *GORMProfileRepository) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return r.table.first(ctx, "username = ?", username)
}

func (r *GORMProfileRepository) FindByActivationToken(ctx context.Context, token string) (*models.Profile, error) {
	return r.table.first(ctx, "activation_token = ?", token)
}

func (r *GORMProfileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	return r.table.find(ctx, "username", "")
}
