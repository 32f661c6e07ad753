// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrInvalidEntity        = errors.New("invalid entity")

	// Import errors.
	ErrEmptyFile       = errors.New("file is empty or contains only headers")
	ErrMissingHeaders  = errors.New("missing required headers")
	ErrNoValidRows     = errors.New("no valid transactions found")
	ErrFileRead        = errors.New("failed to read file")
	ErrInvalidFileType = errors.New("unsupported file type")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MissingHeadersError names the required header fields absent from an import file.
type MissingHeadersError struct {
	Fields []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingHeaders, strings.Join(e.Fields, ", "))
}

func (e *MissingHeadersError) Unwrap() error {
	return ErrMissingHeaders
}

// ReferentialIntegrityError reports a delete that would orphan transactions.
type ReferentialIntegrityError struct {
	Kind       string
	ID         string
	References int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: referenced by %d transaction(s)", e.Kind, e.ID, e.References)
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return ErrReferentialIntegrity
}

// FileReadError wraps an I/O failure while loading an import file.
type FileReadError struct {
	Err  error
	Path string
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrFileRead, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *FileReadError) Unwrap() []error {
	return []error{ErrFileRead, e.Err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the text to show for err: the user message when err
// carries one, otherwise a title for the known error kinds.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}

	switch {
	case errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrMissingHeaders),
		errors.Is(err, ErrNoValidRows),
		errors.Is(err, ErrFileRead),
		errors.Is(err, ErrInvalidFileType):
		return "Import failed: " + err.Error()
	case errors.Is(err, ErrReferentialIntegrity):
		return "Delete refused: " + err.Error()
	}
	return err.Error()
}
