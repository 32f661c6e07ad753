package store

import (
	"context"
	"fmt"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

func budgetID(b model.Budget) string { return b.ID }

// Budgets returns a copy of every budget in store order.
func (s *Store) Budgets() []model.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloned(s.budgets)
}

// Budget returns a copy of the budget with the given id.
func (s *Store) Budget(id string) (model.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.budgets, id, budgetID)
	if i < 0 {
		return model.Budget{}, fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	return s.budgets[i], nil
}

// AddBudget stores a new budget under a fresh identifier. Its spent total
// is derived from the current transactions, never taken from the caller.
func (s *Store) AddBudget(ctx context.Context, in model.BudgetInput) (model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := in.Budget(s.newID())
	if err := validateBudget(b); err != nil {
		return model.Budget{}, err
	}
	b.Spent = budget.Spent(b, s.transactions)

	budgets := append(cloned(s.budgets), b)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotBudgets: budgets}); err != nil {
		return model.Budget{}, err
	}
	s.budgets = budgets
	return b, nil
}

// UpdateBudget merges patch into the budget with the given id and
// re-derives its spent total. An unknown id is a silent no-op.
func (s *Store) UpdateBudget(ctx context.Context, id string, patch model.BudgetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.budgets, id, budgetID)
	if i < 0 {
		return nil
	}

	updated := s.budgets[i]
	patch.Apply(&updated)
	updated.ID = id
	if err := validateBudget(updated); err != nil {
		return err
	}
	updated.Spent = budget.Spent(updated, s.transactions)

	budgets := cloned(s.budgets)
	budgets[i] = updated
	if err := s.persist(ctx, map[service.Slot]any{service.SlotBudgets: budgets}); err != nil {
		return err
	}
	s.budgets = budgets
	return nil
}

// DeleteBudget removes the budget with the given id, if present.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.budgets, id, budgetID)
	if i < 0 {
		return nil
	}

	budgets := make([]model.Budget, 0, len(s.budgets)-1)
	budgets = append(budgets, s.budgets[:i]...)
	budgets = append(budgets, s.budgets[i+1:]...)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotBudgets: budgets}); err != nil {
		return err
	}
	s.budgets = budgets
	return nil
}
