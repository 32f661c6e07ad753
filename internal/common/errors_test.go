package common

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingHeadersError(t *testing.T) {
	err := fmt.Errorf("parse: %w", &MissingHeadersError{Fields: []string{"date", "amount"}})

	assert.ErrorIs(t, err, ErrMissingHeaders)
	assert.Contains(t, err.Error(), "date, amount")

	var headersErr *MissingHeadersError
	assert.True(t, errors.As(err, &headersErr))
	assert.Equal(t, []string{"date", "amount"}, headersErr.Fields)
}

func TestReferentialIntegrityError(t *testing.T) {
	err := &ReferentialIntegrityError{Kind: "category", ID: "c1", References: 3}

	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	assert.Equal(t, "cannot delete category c1: referenced by 3 transaction(s)", err.Error())
}

func TestFileReadError(t *testing.T) {
	err := &FileReadError{Path: "/tmp/x.csv", Err: os.ErrNotExist}

	assert.ErrorIs(t, err, ErrFileRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "/tmp/x.csv")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "user error", err: NewUserError("Could not save", errors.New("disk full")), want: "Could not save: disk full"},
		{name: "import error", err: ErrEmptyFile, want: "Import failed: " + ErrEmptyFile.Error()},
		{name: "wrapped import error", err: fmt.Errorf("x: %w", ErrNoValidRows), want: "Import failed: x: " + ErrNoValidRows.Error()},
		{name: "delete refused", err: &ReferentialIntegrityError{Kind: "account", ID: "a1", References: 1}, want: "Delete refused: cannot delete account a1: referenced by 1 transaction(s)"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
