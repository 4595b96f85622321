package services

import (
	"context"
	"fmt"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/repositories"

	"go.uber.org/zap"
)

// MediaHost is the external store holding image bytes. *media.Client
// satisfies it.
type MediaHost interface {
	PresignedURL(ctx context.Context, ref string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// ImageView is an image with a temporary download link when a media host is
// configured.
type ImageView struct {
	models.Image
	URL string `json:"imageUrl,omitempty"`
}

// ImageService handles business logic related to report images.
type ImageService struct {
	repo    repositories.ImageRepository
	reports repositories.ReportRepository
	media   MediaHost
}

// NewImageService creates a new ImageService. media may be nil.
func NewImageService(repo repositories.ImageRepository, reports repositories.ReportRepository, media MediaHost) *ImageService {
	return &ImageService{
		repo:    repo,
		reports: reports,
		media:   media,
	}
}

// CreateImage records a media reference against an existing report.
func (s *ImageService) CreateImage(ctx context.Context, in models.ImageInput) (*models.Image, error) {
	image, err := models.NewImage(in)
	if err != nil {
		return nil, err
	}

	report, err := s.reports.FindByID(ctx, image.ReportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("report %s: %w", image.ReportID, repositories.ErrNotFound)
	}

	if err := s.repo.Insert(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) GetImage(ctx context.Context, id identity.ID) (*ImageView, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("image %s: %w", id, repositories.ErrNotFound)
	}
	view := s.view(ctx, *image)
	return &view, nil
}

func (s *ImageService) ListImages(ctx context.Context) ([]ImageView, error) {
	images, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, images), nil
}

func (s *ImageService) ListByReport(ctx context.Context, reportID identity.ID) ([]ImageView, error) {
	images, err := s.repo.FindByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, images), nil
}

// DeleteImage removes the record, then the media object. A media host failure
// is logged; the record is already gone.
func (s *ImageService) DeleteImage(ctx context.Context, id identity.ID) error {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if image == nil {
		return fmt.Errorf("image %s: %w", id, repositories.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.media != nil {
		if err := s.media.Remove(ctx, image.MediaRef); err != nil {
			zap.L().Warn("failed to remove media object",
				zap.String("image_id", id.String()), zap.String("media_ref", image.MediaRef), zap.Error(err))
		}
	}
	return nil
}

func (s *ImageService) views(ctx context.Context, images []models.Image) []ImageView {
	views := make([]ImageView, 0, len(images))
	for _, image := range images {
		views = append(views, s.view(ctx, image))
	}
	return views
}

func (s *ImageService) view(ctx context.Context, image models.Image) ImageView {
	view := ImageView{Image: image}
	if s.media == nil {
		return view
	}
	url, err := s.media.PresignedURL(ctx, image.MediaRef)
	if err != nil {
		zap.L().Warn("failed to presign media URL", zap.String("media_ref", image.MediaRef), zap.Error(err))
		return view
	}
	view.URL = url
	return view
}
