// Package storage provides the durable slot backends for the entity store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/expense-track/internal/service"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrUnknownSlot  = errors.New("unknown slot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSlot ensures the slot is one of the four known collections.
func validateSlot(slot service.Slot) error {
	for _, known := range service.AllSlots {
		if slot == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
}
