package service

import (
	"errors"
	"fmt"

	"github.com/yasohm/formulaire/internal/intake/blob"
)

var (
	ErrMissingFields   = errors.New("required fields are missing")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrPhotoType       = errors.New("unsupported photo type")
	ErrPhotoSize       = errors.New("photo too large")
	ErrCertificateType = errors.New("unsupported certificate type")
	ErrCertificateSize = errors.New("certificate too large")

	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidID            = errors.New("registration id is required")

	// ErrPersistence wraps store failures other than a uniqueness violation.
	ErrPersistence = errors.New("persistence failure")
)

// UploadError reports that storing one of the submitted files failed. No
// registration was created.
type UploadError struct {
	Kind blob.Kind
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Kind, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
