package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

func transactionID(t model.Transaction) string { return t.ID }

// Transactions returns a copy of every transaction in store order.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloned(s.transactions)
}

// Transaction returns a copy of the transaction with the given id.
func (s *Store) Transaction(id string) (model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.transactions, id, transactionID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return s.transactions[i], nil
}

// AddTransaction stores a new transaction under a fresh identifier.
func (s *Store) AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	created, err := s.ImportTransactions(ctx, []model.TransactionInput{in})
	if err != nil {
		return model.Transaction{}, err
	}
	return created[0], nil
}

// ImportTransactions appends a batch of transactions with fresh identifiers
// and runs a single recalculation pass. Either every input is stored or
// none is.
func (s *Store) ImportTransactions(ctx context.Context, inputs []model.TransactionInput) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]model.Transaction, 0, len(inputs))
	for i, in := range inputs {
		t := in.Transaction(s.newID())
		if err := validateTransaction(t); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		created = append(created, t)
	}

	transactions := make([]model.Transaction, 0, len(s.transactions)+len(created))
	transactions = append(transactions, s.transactions...)
	transactions = append(transactions, created...)

	if err := s.commitTransactions(ctx, transactions); err != nil {
		return nil, err
	}

	for _, t := range created {
		s.warnOnTypeMismatch(t)
	}
	slog.Debug("added transactions", "count", len(created))
	return cloned(created), nil
}

// UpdateTransaction merges patch into the transaction with the given id.
// An unknown id is a silent no-op.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.transactions, id, transactionID)
	if i < 0 {
		slog.Debug("update of unknown transaction ignored", "id", id)
		return nil
	}

	updated := s.transactions[i]
	patch.Apply(&updated)
	updated.ID = id
	if err := validateTransaction(updated); err != nil {
		return err
	}

	transactions := cloned(s.transactions)
	transactions[i] = updated
	if err := s.commitTransactions(ctx, transactions); err != nil {
		return err
	}

	s.warnOnTypeMismatch(updated)
	return nil
}

// DeleteTransaction removes the transaction with the given id, if present.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.transactions, id, transactionID)
	if i < 0 {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(s.transactions)-1)
	transactions = append(transactions, s.transactions[:i]...)
	transactions = append(transactions, s.transactions[i+1:]...)
	return s.commitTransactions(ctx, transactions)
}

// TypeMismatches returns the transactions whose type differs from the type
// of the category they reference.
func (s *Store) TypeMismatches() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var mismatched []model.Transaction
	for _, t := range s.transactions {
		if c, ok := s.categoryOf(t); ok && c.Type != t.Type {
			mismatched = append(mismatched, t)
		}
	}
	return mismatched
}

// commitTransactions recalculates budgets against the new transaction set,
// writes both slots, then swaps them in. Callers hold s.mu.
func (s *Store) commitTransactions(ctx context.Context, transactions []model.Transaction) error {
	budgets := budget.Recalculate(s.budgets, transactions)
	if err := s.persist(ctx, map[service.Slot]any{
		service.SlotTransactions: transactions,
		service.SlotBudgets:      budgets,
	}); err != nil {
		return err
	}

	s.transactions = transactions
	s.budgets = budgets
	return nil
}

func (s *Store) categoryOf(t model.Transaction) (model.Category, bool) {
	if t.Category == "" {
		return model.Category{}, false
	}
	i := indexOf(s.categories, t.Category, categoryID)
	if i < 0 {
		return model.Category{}, false
	}
	return s.categories[i], true
}

func (s *Store) warnOnTypeMismatch(t model.Transaction) {
	if c, ok := s.categoryOf(t); ok && c.Type != t.Type {
		slog.Warn("transaction type does not match its category",
			"transaction", t.ID,
			"type", t.Type,
			"category", c.Name,
			"category_type", c.Type)
	}
}
