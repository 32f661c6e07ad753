// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/model"
)

// Slot names the four durable collections.
type Slot string

// Durable slot names.
const (
	SlotTransactions Slot = "transactions"
	SlotCategories   Slot = "categories"
	SlotBudgets      Slot = "budgets"
	SlotAccounts     Slot = "accounts"
)

// AllSlots lists every slot in load order.
var AllSlots = []Slot{SlotCategories, SlotAccounts, SlotTransactions, SlotBudgets}

// SlotStorage is the durable key-value backend behind the entity store.
// Each slot holds the serialized form of one entity collection.
type SlotStorage interface {
	// Load returns the slot payload. found is false when the slot was never written.
	Load(ctx context.Context, slot Slot) (payload []byte, found bool, err error)
	// Save replaces the slot payload.
	Save(ctx context.Context, slot Slot, payload []byte) error
	// SaveAll replaces several slots atomically.
	SaveAll(ctx context.Context, payloads map[Slot][]byte) error
	Close() error
}

// ProgressReporter receives the fraction of an import that has been processed.
// Reporting is purely observational.
type ProgressReporter interface {
	Start(total int)
	Advance(processed int)
	Finish()
}

// NopProgress discards progress updates.
type NopProgress struct{}

// Start implements ProgressReporter.
func (NopProgress) Start(int) {}

// Advance implements ProgressReporter.
func (NopProgress) Advance(int) {}

// Finish implements ProgressReporter.
func (NopProgress) Finish() {}

// EntityStore is the read and mutation surface over all four collections.
// Returned values are copies; callers never hold references into the store.
type EntityStore interface {
	// Transactions
	Transactions() []model.Transaction
	Transaction(id string) (model.Transaction, error)
	AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) error
	DeleteTransaction(ctx context.Context, id string) error
	ImportTransactions(ctx context.Context, inputs []model.TransactionInput) ([]model.Transaction, error)

	// Categories
	Categories() []model.Category
	Category(id string) (model.Category, error)
	AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) error

	// Budgets
	Budgets() []model.Budget
	Budget(id string) (model.Budget, error)
	AddBudget(ctx context.Context, in model.BudgetInput) (model.Budget, error)
	UpdateBudget(ctx context.Context, id string, patch model.BudgetPatch) error
	DeleteBudget(ctx context.Context, id string) error

	// Accounts
	Accounts() []model.Account
	Account(id string) (model.Account, error)
	AddAccount(ctx context.Context, in model.AccountInput) (model.Account, error)
	UpdateAccount(ctx context.Context, id string, patch model.AccountPatch) error
	DeleteAccount(ctx context.Context, id string) error
	TotalBalance() decimal.Decimal

	// Maintenance
	TypeMismatches() []model.Transaction
	RecalculateBudgets(ctx context.Context) ([]string, error)
	Reload(ctx context.Context) error
	Reset(ctx context.Context) error
}

// DateRange represents an inclusive window of calendar days.
type DateRange struct {
	Start model.Date
	End   model.Date
}

// Contains reports whether d falls within the range.
func (r DateRange) Contains(d model.Date) bool {
	return d.Between(r.Start, r.End)
}
