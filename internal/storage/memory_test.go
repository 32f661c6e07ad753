package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/service"
)

func TestMemoryStorage_RoundTrip(t *testing.T) {
	m := NewMemoryStorage()
	ctx := context.Background()

	_, found, err := m.Load(ctx, service.SlotAccounts)
	require.NoError(t, err)
	assert.False(t, found)

	payload := []byte(`[1,2]`)
	require.NoError(t, m.Save(ctx, service.SlotAccounts, payload))
	payload[1] = '9'

	got, found, err := m.Load(ctx, service.SlotAccounts)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2]`, string(got), "stored bytes are copied")
	assert.Equal(t, 1, m.Writes(service.SlotAccounts))
	assert.NoError(t, m.Close())
}

func TestMemoryStorage_Validation(t *testing.T) {
	m := NewMemoryStorage()
	ctx := context.Background()

	err := m.SaveAll(ctx, map[service.Slot][]byte{
		service.SlotAccounts: []byte(`[]`),
		service.Slot("x"):    []byte(`[]`),
	})
	assert.ErrorIs(t, err, ErrUnknownSlot)
	assert.Zero(t, m.Writes(service.SlotAccounts))

	assert.ErrorIs(t, m.Save(ctx, service.SlotAccounts, nil), ErrNilParameter)
}
