package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/services"
	"github.com/KDAtkins/infrastructure/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_SignUp(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	publisher := new(MockPublisher)
	service := services.NewProfileService(mockRepo, fastHasher, publisher)

	in := services.SignUpInput{
		Username:        "jdoe",
		Email:           "JDoe@Example.com",
		Password:        "correct horse",
		PasswordConfirm: "correct horse",
	}

	mockRepo.On("FindByUsername", "jdoe").Return(nil, nil).Once()
	mockRepo.On("FindByEmail", "jdoe@example.com").Return(nil, nil).Once()
	mockRepo.On("Insert", mock.AnythingOfType("*models.Profile")).Return(nil).Once()

	var event map[string]any
	publisher.On("Publish", services.EventProfileCreated, mock.Anything).Run(func(args mock.Arguments) {
		require.NoError(t, json.Unmarshal(args.Get(1).([]byte), &event))
	}).Return(nil).Once()

	profile, err := service.SignUp(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", profile.Email)
	assert.False(t, profile.IsActivated())
	require.NotNil(t, profile.ActivationToken)
	assert.Len(t, *profile.ActivationToken, validation.TokenLen)
	assert.True(t, fastHasher.Verify("correct horse", profile.PasswordSalt, profile.PasswordHash))
	assert.Equal(t, *profile.ActivationToken, event["activationToken"])
	assert.Equal(t, profile.ID.String(), event["profileId"])

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProfileService_SignUpRejects(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := services.NewProfileService(mockRepo, fastHasher, nil)

	_, err := service.SignUp(ctx, services.SignUpInput{Username: "a", Email: "a@example.com", Password: "password1", PasswordConfirm: "password2"})
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)

	_, err = service.SignUp(ctx, services.SignUpInput{Username: "a", Email: "a@example.com", Password: "short", PasswordConfirm: "short"})
	assert.ErrorIs(t, err, services.ErrWeakPassword)

	_, err = service.SignUp(ctx, services.SignUpInput{Username: "a", Email: "nope", Password: "password1", PasswordConfirm: "password1"})
	assert.ErrorIs(t, err, validation.ErrInvalidEmail)

	mockRepo.On("FindByUsername", "taken").Return(&models.Profile{}, nil).Once()
	_, err = service.SignUp(ctx, services.SignUpInput{Username: "taken", Email: "a@example.com", Password: "password1", PasswordConfirm: "password1"})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)
	assert.Contains(t, err.Error(), `username "taken" already taken`)

	mockRepo.On("FindByUsername", "fresh").Return(nil, nil).Once()
	mockRepo.On("FindByEmail", "used@example.com").Return(&models.Profile{}, nil).Once()
	_, err = service.SignUp(ctx, services.SignUpInput{Username: "fresh", Email: "used@example.com", Password: "password1", PasswordConfirm: "password1"})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)

	mockRepo.AssertExpectations(t)
}

func TestProfileService_Activate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := services.NewProfileService(mockRepo, fastHasher, nil)

	token := "0123456789abcdef0123456789abcdef"
	profile := newTestProfile(t, "password123", &token)

	mockRepo.On("FindByActivationToken", token).Return(profile, nil).Once()
	mockRepo.On("Update", profile).Return(nil).Once()
	require.NoError(t, service.Activate(ctx, token))
	assert.True(t, profile.IsActivated())

	mockRepo.On("FindByActivationToken", token).Return(nil, nil).Once()
	assert.ErrorIs(t, service.Activate(ctx, token), repositories.ErrNotFound)

	assert.ErrorIs(t, service.Activate(ctx, "not-a-token"), validation.ErrInvalidToken)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := services.NewProfileService(mockRepo, fastHasher, nil)

	profile := newTestProfile(t, "password123", nil)
	salt := append([]byte(nil), profile.PasswordSalt...)

	mockRepo.On("FindByID", profile.ID).Return(profile, nil)
	mockRepo.On("Update", profile).Return(nil).Once()

	assert.ErrorIs(t, service.ResetPassword(ctx, profile.ID, "wrong", "new password"), services.ErrWrongPassword)
	assert.ErrorIs(t, service.ResetPassword(ctx, profile.ID, "password123", "short"), services.ErrWeakPassword)

	require.NoError(t, service.ResetPassword(ctx, profile.ID, "password123", "new password"))
	assert.True(t, fastHasher.Verify("new password", profile.PasswordSalt, profile.PasswordHash))
	assert.Equal(t, salt, profile.PasswordSalt)
	mockRepo.AssertExpectations(t)
}
