package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/models"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/validation"
	"github.com/KDAtkins/infrastructure/pkg/password"
)

const MinPasswordLen = 8

// SignUpInput is the raw sign-up form.
type SignUpInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// ProfileService handles sign-up, activation and password changes.
type ProfileService struct {
	repo   repositories.ProfileRepository
	hasher password.Hasher
	events EventPublisher
}

// NewProfileService creates a new ProfileService. events may be nil.
func NewProfileService(repo repositories.ProfileRepository, hasher password.Hasher, events EventPublisher) *ProfileService {
	return &ProfileService{
		repo:   repo,
		hasher: hasher,
		events: events,
	}
}

// SignUp creates an inactive profile with a fresh salt and activation token,
// then announces it so the activation mail can be sent.
func (s *ProfileService) SignUp(ctx context.Context, in SignUpInput) (*models.Profile, error) {
	if in.Password != in.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if len([]rune(in.Password)) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	salt, err := password.NewSalt()
	if err != nil {
		return nil, err
	}
	token, err := newActivationToken()
	if err != nil {
		return nil, err
	}

	profile, err := models.NewProfile(models.ProfileInput{
		Username:        in.Username,
		Email:           in.Email,
		PasswordHash:    s.hasher.Derive(in.Password, salt),
		PasswordSalt:    salt,
		ActivationToken: &token,
	})
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByUsername(ctx, profile.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("username %q already taken: %w", profile.Username, repositories.ErrAlreadyExists)
	}
	if existing, err := s.repo.FindByEmail(ctx, profile.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("email %q already registered: %w", profile.Email, repositories.ErrAlreadyExists)
	}

	if err := s.repo.Insert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to register profile: %w", err)
	}

	publishEvent(s.events, EventProfileCreated, map[string]any{
		"profileId":       profile.ID,
		"profileUsername": profile.Username,
		"profileEmail":    profile.Email,
		"activationToken": token,
	})
	return profile, nil
}

// Activate clears the activation token of the profile holding it. A token
// can be used once.
func (s *ProfileService) Activate(ctx context.Context, rawToken string) error {
	token, err := validation.Token("activationToken", rawToken)
	if err != nil {
		return err
	}
	profile, err := s.repo.FindByActivationToken(ctx, token)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("activation token: %w", repositories.ErrNotFound)
	}
	profile.ClearActivationToken()
	return s.repo.Update(ctx, profile)
}

// GetProfile returns repositories.ErrNotFound when the profile does not exist.
func (s *ProfileService) GetProfile(ctx context.Context, id identity.ID) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s: %w", id, repositories.ErrNotFound)
	}
	return profile, nil
}

// ResetPassword replaces the verifier after checking the current password.
// The salt is kept.
func (s *ProfileService) ResetPassword(ctx context.Context, id identity.ID, current, next string) error {
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, profile.PasswordSalt, profile.PasswordHash) {
		return ErrWrongPassword
	}
	if len([]rune(next)) < MinPasswordLen {
		return ErrWeakPassword
	}
	if err := profile.SetPasswordHash(s.hasher.Derive(next, profile.PasswordSalt)); err != nil {
		return err
	}
	return s.repo.Update(ctx, profile)
}

func newActivationToken() (string, error) {
	b := make([]byte, validation.TokenLen/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate activation token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
