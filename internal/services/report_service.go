package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/validation"
)

// ReportService handles business logic related to reports.
type ReportService struct {
	repo   repositories.ReportRepository
	events EventPublisher
}

// NewReportService creates a new ReportService. events may be nil.
func NewReportService(repo repositories.ReportRepository, events EventPublisher) *ReportService {
	return &ReportService{
		repo:   repo,
		events: events,
	}
}

// CreateReport validates and stores a citizen submission. A missing status
// means the report was just filed.
func (s *ReportService) CreateReport(ctx context.Context, in models.ReportInput) (*models.Report, error) {
	if in.Status == "" {
		in.Status = models.StatusReported
	}
	report, err := models.NewReport(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, report); err != nil {
		return nil, err
	}
	publishEvent(s.events, EventReportCreated, report)
	return report, nil
}

// GetReport returns repositories.ErrNotFound when the report does not exist.
func (s *ReportService) GetReport(ctx context.Context, id identity.ID) (*models.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("report %s: %w", id, repositories.ErrNotFound)
	}
	return report, nil
}

// UpdateReport applies the supplied fields all-or-nothing and persists them.
func (s *ReportService) UpdateReport(ctx context.Context, id identity.ID, u models.ReportUpdate) (*models.Report, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := report.Apply(u); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	publishEvent(s.events, EventReportUpdated, report)
	return report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id identity.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(s.events, EventReportDeleted, map[string]any{"reportId": id})
	return nil
}

func (s *ReportService) ListReports(ctx context.Context) ([]models.Report, error) {
	return s.repo.FindAll(ctx)
}

func (s *ReportService) ListByCategory(ctx context.Context, categoryID identity.ID) ([]models.Report, error) {
	return s.repo.FindByCategory(ctx, categoryID)
}

// ListByStatus matches the status as it would have been stored.
func (s *ReportService) ListByStatus(ctx context.Context, raw string) ([]models.Report, error) {
	status, err := validation.Text("status", raw, models.MaxStatusLen)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *ReportService) ListByUrgency(ctx context.Context, raw int) ([]models.Report, error) {
	urgency, err := validation.Int("urgency", raw, models.MinUrgency, models.MaxUrgency)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUrgency(ctx, urgency)
}

// ListByDateRange returns reports created within [from, to].
func (s *ReportService) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Report, error) {
	return s.repo.FindByDateRange(ctx, from, to)
}
