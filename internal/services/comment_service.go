package services

import (
	"context"
	"fmt"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/repositories"
)

// CommentService handles business logic related to comments.
type CommentService struct {
	repo    repositories.CommentRepository
	reports repositories.ReportRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo repositories.CommentRepository, reports repositories.ReportRepository) *CommentService {
	return &CommentService{
		repo:    repo,
		reports: reports,
	}
}

// CreateComment stores a comment by author on an existing report. Any author
// in the input is replaced by the signed-in one.
func (s *CommentService) CreateComment(ctx context.Context, author identity.ID, in models.CommentInput) (*models.Comment, error) {
	in.ProfileID = author
	comment, err := models.NewComment(in)
	if err != nil {
		return nil, err
	}

	report, err := s.reports.FindByID(ctx, comment.ReportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("report %s: %w", comment.ReportID, repositories.ErrNotFound)
	}

	if err := s.repo.Insert(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id identity.ID) (*models.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %s: %w", id, repositories.ErrNotFound)
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context) ([]models.Comment, error) {
	return s.repo.FindAll(ctx)
}

func (s *CommentService) ListByReport(ctx context.Context, reportID identity.ID) ([]models.Comment, error) {
	return s.repo.FindByReport(ctx, reportID)
}

func (s *CommentService) ListByProfile(ctx context.Context, profileID identity.ID) ([]models.Comment, error) {
	return s.repo.FindByProfile(ctx, profileID)
}

// DeleteComment removes a comment on behalf of actor, who must be its author
// or an administrator.
func (s *CommentService) DeleteComment(ctx context.Context, actor identity.ID, isAdmin bool, id identity.ID) error {
	comment, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.ProfileID != actor && !isAdmin {
		return fmt.Errorf("comment %s belongs to another profile: %w", id, ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}
