package repositories

import (
	"context"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"

	"gorm.io/gorm"
)

const commentOrder = "posted_at"

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	table gormTable[models.Comment]
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		table: gormTable[models.Comment]{db: db, entity: "comment", pk: "comment_id"},
	}
}

func (r *GORMCommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	return r.table.insert(ctx, comment.ID, comment)
}

func (r *GORMCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.table.update(ctx, comment.ID, map[string]any{
		"content": comment.Content,
	})
}

func (r *GORMCommentRepository) Delete(ctx context.Context, id identity.ID) error {
	return r.table.delete(ctx, id)
}

func (r *GORMCommentRepository) FindByID(ctx context.Context, id identity.ID) (*models.Comment, error) {
	return r.table.findByID(ctx, id)
}

func (r *GORMCommentRepository) FindByReport(ctx context.Context, reportID identity.ID) ([]models.Comment, error) {
	return r.table.find(ctx, commentOrder, "report_id = ?", reportID)
}

func (r *GORMCommentRepository) FindByProfile(ctx context.Context, profileID identity.ID) ([]models.Comment, error) {
	return r.table.find(ctx, commentOrder, "profile_id = ?", profileID)
}

func (r *GORMCommentRepository) FindAll(ctx context.Context) ([]models.Comment, error) {
	return r.table.find(ctx, commentOrder, "")
}
