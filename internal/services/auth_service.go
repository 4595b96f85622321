package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/repositories"
	"github.com/KDAtkins/infrastructure/internal/validation"
	"github.com/KDAtkins/infrastructure/pkg/password"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

// Principal is what a successful verification yields. It never carries the
// stored verifier.
type Principal struct {
	ProfileID identity.ID
	Username  string
}

// TokenClaims are the values bound into a signed session token.
type TokenClaims struct {
	ProfileID identity.ID
	Username  string
	SessionID string
}

// AuthService verifies credentials and signs session tokens.
type AuthService struct {
	profiles  repositories.ProfileRepository
	hasher    password.Hasher
	jwtSecret []byte
	tokenTTL  time.Duration

	// derived against when no profile matches, so an unknown email costs the
	// same as a wrong password
	dummySalt []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(profiles repositories.ProfileRepository, hasher password.Hasher, jwtSecret string, tokenTTL time.Duration) (*AuthService, error) {
	salt, err := password.NewSalt()
	if err != nil {
		return nil, err
	}
	return &AuthService{
		profiles:  profiles,
		hasher:    hasher,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		dummySalt: salt,
	}, nil
}

// Verify checks a candidate password against the profile registered under
// email. It fails with ErrAccountNotFound, ErrAccountNotActivated or
// ErrInvalidCredentials; the first and last must be reported identically.
func (s *AuthService) Verify(ctx context.Context, email, plain string) (*Principal, error) {
	normalized, err := validation.Email("profileEmail", email)
	if err != nil {
		s.hasher.Derive(plain, s.dummySalt)
		return nil, ErrAccountNotFound
	}

	profile, err := s.profiles.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		s.hasher.Derive(plain, s.dummySalt)
		return nil, ErrAccountNotFound
	}

	matches := s.hasher.Verify(plain, profile.PasswordSalt, profile.PasswordHash)
	if !profile.IsActivated() {
		return nil, ErrAccountNotActivated
	}
	if !matches {
		return nil, ErrInvalidCredentials
	}

	return &Principal{ProfileID: profile.ID, Username: profile.Username}, nil
}

// IssueToken signs a token binding the principal to the server-side session
// it was issued with.
func (s *AuthService) IssueToken(p Principal, sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"profileId":       p.ProfileID.String(),
		"profileUsername": p.Username,
		"sid":             sessionID,
		"exp":             now.Add(s.tokenTTL).Unix(),
		"iat":             now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning its claims if
// the signature and expiry hold.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		zap.L().Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	rawID, _ := claims["profileId"].(string)
	profileID, err := identity.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	username, _ := claims["profileUsername"].(string)
	sessionID, _ := claims["sid"].(string)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}

	return &TokenClaims{ProfileID: profileID, Username: username, SessionID: sessionID}, nil
}
