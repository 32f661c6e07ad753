package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

func accountID(a model.Account) string { return a.ID }

// Accounts returns a copy of every account in store order.
func (s *Store) Accounts() []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloned(s.accounts)
}

// Account returns a copy of the account with the given id.
func (s *Store) Account(id string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.accounts, id, accountID)
	if i < 0 {
		return model.Account{}, fmt.Errorf("account %s: %w", id, common.ErrNotFound)
	}
	return s.accounts[i], nil
}

// TotalBalance sums the user-entered balances of every account.
func (s *Store) TotalBalance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, a := range s.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// AddAccount stores a new account under a fresh identifier.
func (s *Store) AddAccount(ctx context.Context, in model.AccountInput) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := in.Account(s.newID())
	if err := validateAccount(a); err != nil {
		return model.Account{}, err
	}

	accounts := append(cloned(s.accounts), a)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotAccounts: accounts}); err != nil {
		return model.Account{}, err
	}
	s.accounts = accounts
	return a, nil
}

// UpdateAccount merges patch into the account with the given id.
// An unknown id is a silent no-op.
func (s *Store) UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.accounts, id, accountID)
	if i < 0 {
		return nil
	}

	updated := s.accounts[i]
	patch.Apply(&updated)
	updated.ID = id
	if err := validateAccount(updated); err != nil {
		return err
	}

	accounts := cloned(s.accounts)
	accounts[i] = updated
	if err := s.persist(ctx, map[service.Slot]any{service.SlotAccounts: accounts}); err != nil {
		return err
	}
	s.accounts = accounts
	return nil
}

// DeleteAccount removes the account with the given id. It fails with a
// *common.ReferentialIntegrityError while any transaction references it.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if refs := s.countReferences(func(t model.Transaction) bool { return t.Account == id }); refs > 0 {
		return &common.ReferentialIntegrityError{Kind: "account", ID: id, References: refs}
	}

	i := indexOf(s.accounts, id, accountID)
	if i < 0 {
		return nil
	}

	accounts := make([]model.Account, 0, len(s.accounts)-1)
	accounts = append(accounts, s.accounts[:i]...)
	accounts = append(accounts, s.accounts[i+1:]...)
	if err := s.persist(ctx, map[service.Slot]any{service.SlotAccounts: accounts}); err != nil {
		return err
	}
	s.accounts = accounts
	return nil
}
