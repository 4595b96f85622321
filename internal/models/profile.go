package models

import (
	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/validation"
	"github.com/KDAtkins/infrastructure/pkg/password"
)

const MaxUsernameLen = 32

// Profile is an account that can sign in. A non-nil ActivationToken means the
// account has not been activated yet.
type Profile struct {
	ID              identity.ID `json:"profileId" gorm:"column:profile_id;primaryKey"`
	Username        string      `json:"profileUsername" gorm:"column:username;uniqueIndex;size:32;not null"`
	Email           string      `json:"profileEmail" gorm:"column:email;uniqueIndex;size:128;not null"`
	PasswordHash    []byte      `json:"-" gorm:"column:password_hash;not null"`
	PasswordSalt    []byte      `json:"-" gorm:"column:password_salt;not null"`
	ActivationToken *string     `json:"-" gorm:"column:activation_token;size:32;uniqueIndex"`
	IsAdmin         bool        `json:"profileIsAdmin" gorm:"column:is_admin;not null;default:false"`
}

func (Profile) TableName() string {
	return "profile"
}

// ProfileInput carries unvalidated profile fields. A nil ID means a new one is
// generated.
type ProfileInput struct {
	ID              any
	Username        string
	Email           string
	PasswordHash    []byte
	PasswordSalt    []byte
	ActivationToken *string
	IsAdmin         bool
}

// NewProfile validates every field and returns a fully built Profile, or the
// first field error and nothing.
func NewProfile(in ProfileInput) (*Profile, error) {
	id := identity.New()
	if in.ID != nil {
		var err error
		if id, err = validation.Identifier("profileId", in.ID); err != nil {
			return nil, err
		}
	}
	username, err := validation.Text("profileUsername", in.Username, MaxUsernameLen)
	if err != nil {
		return nil, err
	}
	email, err := validation.Email("profileEmail", in.Email)
	if err != nil {
		return nil, err
	}
	hash, err := validation.FixedBytes("profileHash", in.PasswordHash, password.HashLen)
	if err != nil {
		return nil, err
	}
	salt, err := validation.FixedBytes("profileSalt", in.PasswordSalt, password.SaltLen)
	if err != nil {
		return nil, err
	}
	var token *string
	if in.ActivationToken != nil {
		t, err := validation.Token("profileActivationToken", *in.ActivationToken)
		if err != nil {
			return nil, err
		}
		token = &t
	}

	return &Profile{
		ID:              id,
		Username:        username,
		Email:           email,
		PasswordHash:    hash,
		PasswordSalt:    salt,
		ActivationToken: token,
		IsAdmin:         in.IsAdmin,
	}, nil
}

// IsActivated reports whether the profile may sign in.
func (p *Profile) IsActivated() bool {
	return p.ActivationToken == nil
}

// ClearActivationToken activates the profile.
func (p *Profile) ClearActivationToken() {
	p.ActivationToken = nil
}

// SetPasswordHash replaces the verifier. The salt never changes.
func (p *Profile) SetPasswordHash(hash []byte) error {
	h, err := validation.FixedBytes("profileHash", hash, password.HashLen)
	if err != nil {
		return err
	}
	p.PasswordHash = h
	return nil
}
