package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KDAtkins/infrastructure/internal/config"
	"github.com/KDAtkins/infrastructure/internal/database"
	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/pkg/password"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.Database{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func newReport(t *testing.T, category identity.ID, status string, urgency int, at time.Time) *models.Report {
	t.Helper()
	r, err := models.NewReport(models.ReportInput{
		CategoryID: category,
		Content:    "pothole on Main St",
		CreatedAt:  at,
		IPAddress:  "192.0.2.10",
		Lat:        35.08,
		Long:       -106.65,
		Status:     status,
		Urgency:    urgency,
		UserAgent:  "Mozilla/5.0",
	})
	require.NoError(t, err)
	return r
}

func TestReportRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMReportRepository(setupTestDB(t))

	at := time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)
	report := newReport(t, identity.New(), models.StatusReported, 3, at)
	require.NoError(t, repo.Insert(ctx, report))

	found, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, report.ID, found.ID)
	assert.Equal(t, report.CategoryID, found.CategoryID)
	assert.Equal(t, "pothole on Main St", found.Content)
	assert.True(t, at.Equal(found.CreatedAt))
	assert.Equal(t, "192.0.2.10", found.IPAddress.String())
	assert.Equal(t, 35.08, found.Lat)
	assert.Equal(t, -106.65, found.Long)
	assert.Equal(t, 3, found.Urgency)
	assert.Equal(t, "Mozilla/5.0", found.UserAgent)
}

func TestReportRepository_FindByIDMissing(t *testing.T) {
	repo := repositories.NewGORMReportRepository(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), identity.New())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestReportRepository_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMReportRepository(setupTestDB(t))

	report := newReport(t, identity.New(), models.StatusReported, 2, time.Now())
	require.NoError(t, repo.Insert(ctx, report))

	again := *report
	again.Content = "overwritten"
	err := repo.Insert(ctx, &again)
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)

	found, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "pothole on Main St", found.Content)
}

func TestReportRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMReportRepository(setupTestDB(t))

	report := newReport(t, identity.New(), models.StatusReported, 2, time.Now())
	require.NoError(t, repo.Insert(ctx, report))

	require.NoError(t, report.SetStatus(models.StatusInProgress))
	require.NoError(t, report.SetUrgency(5))
	require.NoError(t, repo.Update(ctx, report))

	found, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, found.Status)
	assert.Equal(t, 5, found.Urgency)

	require.NoError(t, repo.Delete(ctx, report.ID))
	found, err = repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, repo.Delete(ctx, report.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, report), repositories.ErrNotFound)
}

func TestReportRepository_PredicateFinders(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMReportRepository(setupTestDB(t))

	roads, lights := identity.New(), identity.New()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC) }

	require.NoError(t, repo.Insert(ctx, newReport(t, roads, models.StatusReported, 1, day(1))))
	require.NoError(t, repo.Insert(ctx, newReport(t, roads, models.StatusResolved, 5, day(2))))
	require.NoError(t, repo.Insert(ctx, newReport(t, lights, models.StatusReported, 5, day(3))))

	byCategory, err := repo.FindByCategory(ctx, roads)
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	byStatus, err := repo.FindByStatus(ctx, models.StatusReported)
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byUrgency, err := repo.FindByUrgency(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, byUrgency, 2)

	none, err := repo.FindByUrgency(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	inRange, err := repo.FindByDateRange(ctx, day(1), day(2))
	require.NoError(t, err)
	assert.Len(t, inRange, 2, "both bounds are inclusive")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReportRepository_FindByDateRangeInverted(t *testing.T) {
	repo := repositories.NewGORMReportRepository(setupTestDB(t))

	now := time.Now()
	_, err := repo.FindByDateRange(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, repositories.ErrInvalidRange)
}

func TestReportRepository_ConnectionFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGORMReportRepository(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindAll(context.Background())
	assert.ErrorIs(t, err, repositories.ErrConnectionFailure)
}

func newProfile(t *testing.T, username, email string, token *string) *models.Profile {
	t.Helper()
	salt, err := password.NewSalt()
	require.NoError(t, err)
	p, err := models.NewProfile(models.ProfileInput{
		Username:        username,
		Email:           email,
		PasswordHash:    make([]byte, password.HashLen),
		PasswordSalt:    salt,
		ActivationToken: token,
	})
	require.NoError(t, err)
	return p
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProfileRepository(setupTestDB(t))

	token := "0123456789abcdef0123456789abcdef"
	profile := newProfile(t, "jdoe", "JDoe@Example.com", &token)
	require.NoError(t, repo.Insert(ctx, profile))

	byEmail, err := repo.FindByEmail(ctx, "jdoe@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, profile.ID, byEmail.ID)
	assert.False(t, byEmail.IsActivated())

	byToken, err := repo.FindByActivationToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, byToken)

	byToken.ClearActivationToken()
	require.NoError(t, repo.Update(ctx, byToken))

	byUsername, err := repo.FindByUsername(ctx, "jdoe")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.True(t, byUsername.IsActivated())

	gone, err := repo.FindByActivationToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, gone)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProfileRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMProfileRepository(setupTestDB(t))

	require.NoError(t, repo.Insert(ctx, newProfile(t, "first", "same@example.com", nil)))
	err := repo.Insert(ctx, newProfile(t, "second", "same@example.com", nil))
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCommentRepository(setupTestDB(t))

	author, reportID := identity.New(), identity.New()
	for i := 0; i < 2; i++ {
		c, err := models.NewComment(models.CommentInput{
			ProfileID: author,
			ReportID:  reportID,
			Content:   fmt.Sprintf("still there, day %d", i+1),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, c))
	}
	other, err := models.NewComment(models.CommentInput{
		ProfileID: identity.New(),
		ReportID:  identity.New(),
		Content:   "fixed",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, other))

	byReport, err := repo.FindByReport(ctx, reportID)
	require.NoError(t, err)
	assert.Len(t, byReport, 2)

	byProfile, err := repo.FindByProfile(ctx, author)
	require.NoError(t, err)
	assert.Len(t, byProfile, 2)

	require.NoError(t, other.SetContent("fixed <b>today</b>"))
	require.NoError(t, repo.Update(ctx, other))
	found, err := repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "fixed today", found.Content)

	require.NoError(t, repo.Delete(ctx, other.ID))
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImageRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMImageRepository(setupTestDB(t))

	reportID := identity.New()
	lat, long := 35.1, -106.6
	withCoords, err := models.NewImage(models.ImageInput{ReportID: reportID, MediaRef: "reports/a1", Lat: &lat, Long: &long})
	require.NoError(t, err)
	withoutCoords, err := models.NewImage(models.ImageInput{ReportID: reportID, MediaRef: "reports/a2"})
	require.NoError(t, err)

	require.NoError(t, repo.Insert(ctx, withCoords))
	require.NoError(t, repo.Insert(ctx, withoutCoords))

	byReport, err := repo.FindByReport(ctx, reportID)
	require.NoError(t, err)
	assert.Len(t, byReport, 2)

	found, err := repo.FindByID(ctx, withoutCoords.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.Lat)
	assert.Nil(t, found.Long)

	found, err = repo.FindByID(ctx, withCoords.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Lat)
	assert.Equal(t, lat, *found.Lat)

	assert.ErrorIs(t, repo.Insert(ctx, withCoords), repositories.ErrAlreadyExists)
	require.NoError(t, repo.Delete(ctx, withCoords.ID))
	assert.ErrorIs(t, repo.Delete(ctx, withCoords.ID), repositories.ErrNotFound)
}
