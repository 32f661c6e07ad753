// Package store holds the in-memory entity collections, persists them to
// the durable slots on every mutation, and keeps budget spent totals in
// step with the transaction set.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

// Store is the single owner of all entity lifetimes. Every accessor returns
// copies; every mutation writes the affected slots before it becomes visible.
type Store struct {
	storage      service.SlotStorage
	newID        func() string
	transactions []model.Transaction
	categories   []model.Category
	budgets      []model.Budget
	accounts     []model.Account
	mu           sync.RWMutex
	seed         bool
}

var _ service.EntityStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithoutSeed makes absent slots load as empty collections instead of seed data.
func WithoutSeed() Option {
	return func(s *Store) {
		s.seed = false
	}
}

// WithIDGenerator replaces the identifier generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Open loads every slot from storage, falling back to seed data for absent
// slots, and re-derives budget spent totals.
func Open(ctx context.Context, storage service.SlotStorage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is nil", errInvalid)
	}

	s := &Store{
		storage: storage,
		newID:   NewID,
		seed:    true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards the in-memory state and reads every slot again.
func (s *Store) Reload(ctx context.Context) error {
	var seed seedData
	if s.seed {
		seed = defaultSeed(s.newID)
	}

	var (
		transactions []model.Transaction
		categories   []model.Category
		budgets      []model.Budget
		accounts     []model.Account
	)

	absent := make(map[service.Slot]any)

	found, err := loadSlot(ctx, s.storage, service.SlotCategories, &categories, seed.categories)
	if err != nil {
		return err
	}
	if !found {
		absent[service.SlotCategories] = categories
	}
	if found, err = loadSlot(ctx, s.storage, service.SlotAccounts, &accounts, seed.accounts); err != nil {
		return err
	}
	if !found {
		absent[service.SlotAccounts] = accounts
	}
	if found, err = loadSlot(ctx, s.storage, service.SlotTransactions, &transactions, seed.transactions); err != nil {
		return err
	}
	if !found {
		absent[service.SlotTransactions] = transactions
	}
	if found, err = loadSlot(ctx, s.storage, service.SlotBudgets, &budgets, seed.budgets); err != nil {
		return err
	}
	if !found {
		absent[service.SlotBudgets] = budgets
	}

	// Seeded slots are written back so their identifiers stay stable.
	if len(absent) > 0 {
		if err := s.persist(ctx, absent); err != nil {
			return err
		}
		slog.Debug("initialized absent slots", "count", len(absent))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = transactions
	s.categories = categories
	s.accounts = accounts
	s.budgets = budget.Recalculate(budgets, transactions)

	slog.Debug("loaded entity store",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"budgets", len(s.budgets),
		"accounts", len(s.accounts))
	return nil
}

// Reset replaces every collection with seed data (or empty collections when
// seeding is disabled) and writes all four slots.
func (s *Store) Reset(ctx context.Context) error {
	var seed seedData
	if s.seed {
		seed = defaultSeed(s.newID)
	}

	budgets := budget.Recalculate(orEmpty(seed.budgets), orEmpty(seed.transactions))
	payloads, err := encodeSlots(map[service.Slot]any{
		service.SlotTransactions: orEmpty(seed.transactions),
		service.SlotCategories:   orEmpty(seed.categories),
		service.SlotBudgets:      budgets,
		service.SlotAccounts:     orEmpty(seed.accounts),
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SaveAll(ctx, payloads); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	s.transactions = orEmpty(seed.transactions)
	s.categories = orEmpty(seed.categories)
	s.budgets = budgets
	s.accounts = orEmpty(seed.accounts)

	slog.Info("reset entity store", "seeded", s.seed)
	return nil
}

// RecalculateBudgets runs the recalculation pass and persists the result.
// It returns the ids of budgets whose spent total changed.
func (s *Store) RecalculateBudgets(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := budget.Recalculate(s.budgets, s.transactions)
	changed := budget.Changed(s.budgets, budgets)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotBudgets: budgets}); err != nil {
		return nil, err
	}
	s.budgets = budgets
	return changed, nil
}

// persist encodes and writes the given collections. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, collections map[service.Slot]any) error {
	payloads, err := encodeSlots(collections)
	if err != nil {
		return err
	}
	if err := s.storage.SaveAll(ctx, payloads); err != nil {
		return fmt.Errorf("failed to persist store: %w", err)
	}
	return nil
}

func encodeSlots(collections map[service.Slot]any) (map[service.Slot][]byte, error) {
	payloads := make(map[service.Slot][]byte, len(collections))
	for slot, collection := range collections {
		data, err := json.Marshal(collection)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", slot, err)
		}
		payloads[slot] = data
	}
	return payloads, nil
}

// loadSlot decodes slot into dst. An absent slot yields fallback and found=false.
func loadSlot[T any](ctx context.Context, storage service.SlotStorage, slot service.Slot, dst *[]T, fallback []T) (bool, error) {
	payload, found, err := storage.Load(ctx, slot)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", slot, err)
	}
	if !found {
		*dst = orEmpty(fallback)
		return false, nil
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", slot, err)
	}
	*dst = orEmpty(items)
	return true, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// cloned returns a copy of items so callers cannot alias the store's slices.
func cloned[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}
