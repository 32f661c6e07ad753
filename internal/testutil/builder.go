// Package testutil provides fixtures for tests that need a populated entity
// store. Stores are backed by in-memory slot storage and use sequential
// identifiers so assertions can name ids directly.
//
// Example:
//
//	ts := testutil.NewBuilder(t).
//		WithFixture(testutil.FixtureMinimal).
//		WithAccount("Checking", model.AccountChecking, "100").
//		WithExpense("2024-03-05", "42.50", "Groceries").
//		WithMonthlyBudget("Food", "Groceries", "300", "2024-03-01").
//		Build()
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/storage"
	"github.com/Veraticus/expense-track/internal/store"
)

// TestStore is a store opened over in-memory storage.
type TestStore struct {
	Store   *store.Store
	Storage *storage.MemoryStorage
	t       *testing.T
}

// CategoryID returns the id of the first category named name or fails the test.
func (ts *TestStore) CategoryID(name string) string {
	ts.t.Helper()
	for _, c := range ts.Store.Categories() {
		if c.Name == name {
			return c.ID
		}
	}
	ts.t.Fatalf("category %q not found in test data", name)
	return ""
}

// AccountID returns the id of the first account named name or fails the test.
func (ts *TestStore) AccountID(name string) string {
	ts.t.Helper()
	for _, a := range ts.Store.Accounts() {
		if a.Name == name {
			return a.ID
		}
	}
	ts.t.Fatalf("account %q not found in test data", name)
	return ""
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type pendingTransaction struct {
	input        model.TransactionInput
	categoryName string
	accountName  string
}

type pendingBudget struct {
	input        model.BudgetInput
	categoryName string
}

// Builder assembles a TestStore fluently. Entities are created in the order
// they were added, categories and accounts first.
type Builder struct {
	t            *testing.T
	categories   []model.CategoryInput
	accounts     []model.AccountInput
	transactions []pendingTransaction
	budgets      []pendingBudget
	seed         bool
}

// NewBuilder creates a builder for an unseeded store.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithSeed opens the store with the built-in seed data.
func (b *Builder) WithSeed() *Builder {
	b.seed = true
	return b
}

// WithCategory adds a category.
func (b *Builder) WithCategory(name string, kind model.TransactionType) *Builder {
	b.categories = append(b.categories, model.CategoryInput{Name: name, Type: kind, Color: "#000000"})
	return b
}

// WithFixture adds every category of fixture.
func (b *Builder) WithFixture(fixture Fixture) *Builder {
	for _, c := range fixture.Categories() {
		b.WithCategory(c.Name, c.Type)
	}
	return b
}

// WithAccount adds an account with the given decimal balance.
func (b *Builder) WithAccount(name string, kind model.AccountType, balance string) *Builder {
	b.accounts = append(b.accounts, model.AccountInput{
		Name:    name,
		Type:    kind,
		Balance: decimal.RequireFromString(balance),
	})
	return b
}

// WithExpense adds an expense in the named category.
func (b *Builder) WithExpense(date, amount, category string) *Builder {
	return b.WithTransaction(date, amount, model.TypeExpense, category, "")
}

// WithIncome adds an income in the named category.
func (b *Builder) WithIncome(date, amount, category string) *Builder {
	return b.WithTransaction(date, amount, model.TypeIncome, category, "")
}

// WithTransaction adds a transaction. Category and account are names, looked
// up at build time; empty names leave the reference empty.
func (b *Builder) WithTransaction(date, amount string, kind model.TransactionType, category, account string) *Builder {
	b.transactions = append(b.transactions, pendingTransaction{
		input: model.TransactionInput{
			Date:        model.MustParseDate(date),
			Amount:      decimal.RequireFromString(amount),
			Description: fmt.Sprintf("%s %s", kind, date),
			Type:        kind,
		},
		categoryName: category,
		accountName:  account,
	})
	return b
}

// WithMonthlyBudget adds a monthly budget for the named category covering
// the calendar month that starts on start.
func (b *Builder) WithMonthlyBudget(name, category, amount, start string) *Builder {
	from := model.MustParseDate(start)
	return b.WithBudget(model.BudgetInput{
		Name:      name,
		Amount:    decimal.RequireFromString(amount),
		Period:    model.PeriodMonthly,
		StartDate: from,
		EndDate:   from.EndOfMonth(),
	}, category)
}

// WithBudget adds a budget for the named category.
func (b *Builder) WithBudget(in model.BudgetInput, category string) *Builder {
	b.budgets = append(b.budgets, pendingBudget{input: in, categoryName: category})
	return b
}

// Build opens the store and creates every pending entity. Any failure fails the test.
func (b *Builder) Build() *TestStore {
	b.t.Helper()
	ctx := context.Background()

	mem := storage.NewMemoryStorage()
	opts := []store.Option{store.WithIDGenerator(SequentialIDs("id"))}
	if !b.seed {
		opts = append(opts, store.WithoutSeed())
	}

	s, err := store.Open(ctx, mem, opts...)
	if err != nil {
		b.t.Fatalf("failed to open test store: %v", err)
	}
	ts := &TestStore{Store: s, Storage: mem, t: b.t}

	for _, in := range b.categories {
		if _, err := s.AddCategory(ctx, in); err != nil {
			b.t.Fatalf("failed to seed category %q: %v", in.Name, err)
		}
	}
	for _, in := range b.accounts {
		if _, err := s.AddAccount(ctx, in); err != nil {
			b.t.Fatalf("failed to seed account %q: %v", in.Name, err)
		}
	}

	if len(b.transactions) > 0 {
		inputs := make([]model.TransactionInput, 0, len(b.transactions))
		for _, p := range b.transactions {
			in := p.input
			if p.categoryName != "" {
				in.Category = ts.CategoryID(p.categoryName)
			}
			if p.accountName != "" {
				in.Account = ts.AccountID(p.accountName)
			}
			inputs = append(inputs, in)
		}
		if _, err := s.ImportTransactions(ctx, inputs); err != nil {
			b.t.Fatalf("failed to seed transactions: %v", err)
		}
	}

	for _, p := range b.budgets {
		in := p.input
		in.Category = ts.CategoryID(p.categoryName)
		if _, err := s.AddBudget(ctx, in); err != nil {
			b.t.Fatalf("failed to seed budget %q: %v", in.Name, err)
		}
	}

	return ts
}
