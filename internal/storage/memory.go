package storage

import (
	"context"
	"sync"

	"github.com/Veraticus/expense-track/internal/service"
)

// MemoryStorage is a volatile service.SlotStorage for tests and dry runs.
type MemoryStorage struct {
	slots  map[service.Slot][]byte
	writes map[service.Slot]int
	mu     sync.RWMutex
}

var _ service.SlotStorage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty in-memory slot store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		slots:  make(map[service.Slot][]byte),
		writes: make(map[service.Slot]int),
	}
}

// Load implements service.SlotStorage.
func (m *MemoryStorage) Load(ctx context.Context, slot service.Slot) ([]byte, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateSlot(slot); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

// Save implements service.SlotStorage.
func (m *MemoryStorage) Save(ctx context.Context, slot service.Slot, payload []byte) error {
	return m.SaveAll(ctx, map[service.Slot][]byte{slot: payload})
}

// SaveAll implements service.SlotStorage.
func (m *MemoryStorage) SaveAll(ctx context.Context, payloads map[service.Slot][]byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for slot, payload := range payloads {
		if err := validateSlot(slot); err != nil {
			return err
		}
		if payload == nil {
			return ErrNilParameter
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for slot, payload := range payloads {
		m.slots[slot] = append([]byte(nil), payload...)
		m.writes[slot]++
	}
	return nil
}

// Writes returns how many times slot has been written.
func (m *MemoryStorage) Writes(slot service.Slot) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[slot]
}

// Revision returns how many times slot has been written, 0 if never.
func (m *MemoryStorage) Revision(ctx context.Context, slot service.Slot) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateSlot(slot); err != nil {
		return 0, err
	}
	return m.Writes(slot), nil
}

// Close implements service.SlotStorage.
func (m *MemoryStorage) Close() error {
	return nil
}
