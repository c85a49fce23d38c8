package service

import (
	"errors"

	"github.com/taskhub/backend/internal/db"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrConflict            = errors.New("conflict")
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("store unavailable")
	ErrMisconfigured       = errors.New("auth config invalid")
)

// storeError collapses connectivity and missing-schema failures into
// ErrUnavailable; anything else propagates unchanged and surfaces as a 500.
func storeError(err error) error {
	if db.IsUnavailable(err) {
		return ErrUnavailable
	}
	return err
}
