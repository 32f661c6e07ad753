package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/expense-track/internal/service"
)

func TestValidateContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{name: "valid context", ctx: context.Background()},
		{name: "nil context", ctx: nil, wantErr: true},
		{name: "canceled context still valid", ctx: canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNilContext)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	assert.NoError(t, validateString("x", "p"))
	assert.ErrorIs(t, validateString("", "p"), ErrEmptyString)
	assert.ErrorIs(t, validateString(" \t", "p"), ErrEmptyString)
}

func TestValidateSlot(t *testing.T) {
	for _, slot := range service.AllSlots {
		assert.NoError(t, validateSlot(slot))
	}
	assert.ErrorIs(t, validateSlot("vendors"), ErrUnknownSlot)
}
