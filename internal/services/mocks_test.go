package services_test

import (
	"context"
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Insert(ctx context.Context, profile *models.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id identity.ID) error {
	return m.Called(id).Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id identity.ID) (*models.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByActivationToken(ctx context.Context, token string) (*models.Profile, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]models.Profile, error) {
	args := m.Called()
	return args.Get(0).([]models.Profile), args.Error(1)
}

// MockReportRepository is a mock implementation of repositories.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, report *models.Report) error {
	return m.Called(report).Error(0)
}

func (m *MockReportRepository) Update(ctx context.Context, report *models.Report) error {
	return m.Called(report).Error(0)
}

func (m *MockReportRepository) Delete(ctx context.Context, id identity.ID) error {
	return m.Called(id).Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id identity.ID) (*models.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) FindByCategory(ctx context.Context, categoryID identity.ID) ([]models.Report, error) {
	args := m.Called(categoryID)
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) FindByStatus(ctx context.Context, status string) ([]models.Report, error) {
	args := m.Called(status)
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) FindByUrgency(ctx context.Context, urgency int) ([]models.Report, error) {
	args := m.Called(urgency)
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Report, error) {
	args := m.Called(start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) FindAll(ctx context.Context) ([]models.Report, error) {
	args := m.Called()
	return args.Get(0).([]models.Report), args.Error(1)
}

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id identity.ID) error {
	return m.Called(id).Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id identity.ID) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByReport(ctx context.Context, reportID identity.ID) ([]models.Comment, error) {
	args := m.Called(reportID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByProfile(ctx context.Context, profileID identity.ID) ([]models.Comment, error) {
	args := m.Called(profileID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindAll(ctx context.Context) ([]models.Comment, error) {
	args := m.Called()
	return args.Get(0).([]models.Comment), args.Error(1)
}

// MockImageRepository is a mock implementation of repositories.ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Insert(ctx context.Context, image *models.Image) error {
	return m.Called(image).Error(0)
}

func (m *MockImageRepository) Update(ctx context.Context, image *models.Image) error {
	return m.Called(image).Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, id identity.ID) error {
	return m.Called(id).Error(0)
}

func (m *MockImageRepository) FindByID(ctx context.Context, id identity.ID) (*models.Image, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockImageRepository) FindByReport(ctx context.Context, reportID identity.ID) ([]models.Image, error) {
	args := m.Called(reportID)
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *MockImageRepository) FindAll(ctx context.Context) ([]models.Image, error) {
	args := m.Called()
	return args.Get(0).([]models.Image), args.Error(1)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	return m.Called(routingKey, body).Error(0)
}

// MockMediaHost is a mock implementation of services.MediaHost
type MockMediaHost struct {
	mock.Mock
}

func (m *MockMediaHost) PresignedURL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ref)
	return args.String(0), args.Error(1)
}

func (m *MockMediaHost) Remove(ctx context.Context, ref string) error {
	return m.Called(ref).Error(0)
}
