package services

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNotActivated = errors.New("account not activated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("forbidden")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrWeakPassword        = errors.New("password too short")
	ErrWrongPassword       = errors.New("current password is incorrect")
)
