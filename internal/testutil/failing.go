package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/Veraticus/expense-track/internal/service"
	"github.com/Veraticus/expense-track/internal/storage"
)

// ErrInjected is returned by FailingStorage when failures are switched on.
var ErrInjected = errors.New("injected storage failure")

// FailingStorage wraps MemoryStorage and fails every write while FailWrites is set.
type FailingStorage struct {
	*storage.MemoryStorage
	failWrites atomic.Bool
}

var _ service.SlotStorage = (*FailingStorage)(nil)

// NewFailingStorage returns a FailingStorage whose writes succeed until FailWrites(true).
func NewFailingStorage() *FailingStorage {
	return &FailingStorage{MemoryStorage: storage.NewMemoryStorage()}
}

// FailWrites toggles write failures.
func (f *FailingStorage) FailWrites(fail bool) {
	f.failWrites.Store(fail)
}

// Save implements service.SlotStorage.
func (f *FailingStorage) Save(ctx context.Context, slot service.Slot, payload []byte) error {
	return f.SaveAll(ctx, map[service.Slot][]byte{slot: payload})
}

// SaveAll implements service.SlotStorage.
func (f *FailingStorage) SaveAll(ctx context.Context, payloads map[service.Slot][]byte) error {
	if f.failWrites.Load() {
		return ErrInjected
	}
	return f.MemoryStorage.SaveAll(ctx, payloads)
}
