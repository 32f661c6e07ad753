package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/config"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
	"github.com/Veraticus/expense-track/internal/storage"
	"github.com/Veraticus/expense-track/internal/store"
)

// session is an open database plus the store loaded from it.
type session struct {
	db    *storage.SQLiteStorage
	store service.EntityStore
	money *cli.Money
	path  string
}

// openSession opens the configured database, migrates it and loads the store.
func (rt *rootOptions) openSession(ctx context.Context) (*session, error) {
	money, err := cli.NewMoney(rt.settings.Currency)
	if err != nil {
		return nil, err
	}

	dbPath := rt.settings.DatabasePath
	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var opts []store.Option
	if rt.settings.NoSeed {
		opts = append(opts, store.WithoutSeed())
	}
	st, err := store.Open(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	common.LogDebug("opened database", common.Fields{
		"path":         dbPath,
		"transactions": len(st.Transactions()),
		"budgets":      len(st.Budgets()),
	})
	return &session{db: db, store: st, money: money, path: dbPath}, nil
}

// Close releases the database.
func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// checkpoints returns the checkpoint manager that lives next to the database file.
func (s *session) checkpoints() (*storage.CheckpointManager, error) {
	if s.path == config.MemoryDatabase {
		return nil, common.NewUserError("checkpoints need a database file", common.ErrInvalidConfig)
	}
	return storage.NewCheckpointManager(s.db, storage.CheckpointsDir(s.path))
}

// findCategory looks a category up by id, then by case-insensitive name.
func findCategory(st service.EntityStore, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if c, err := st.Category(ref); err == nil {
		return c, nil
	}
	for _, c := range st.Categories() {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("%w: category %q", common.ErrNotFound, ref)
}

// findAccount looks an account up by id, then by case-insensitive name.
func findAccount(st service.EntityStore, ref string) (model.Account, error) {
	ref = strings.TrimSpace(ref)
	if a, err := st.Account(ref); err == nil {
		return a, nil
	}
	for _, a := range st.Accounts() {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return model.Account{}, fmt.Errorf("%w: account %q", common.ErrNotFound, ref)
}

func categoryNames(st service.EntityStore) map[string]string {
	names := make(map[string]string)
	for _, c := range st.Categories() {
		names[c.ID] = c.Name
	}
	return names
}

func accountNames(st service.EntityStore) map[string]string {
	names := make(map[string]string)
	for _, a := range st.Accounts() {
		names[a.ID] = a.Name
	}
	return names
}

func nameOr(names map[string]string, id, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", common.ErrInvalidEntity, s)
	}
	return d, nil
}

func parseDate(s string) (model.Date, error) {
	d, err := model.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", common.ErrInvalidEntity, s)
	}
	return d, nil
}

func parseTransactionType(s string) (model.TransactionType, error) {
	kind := model.TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: type %q must be income or expense", common.ErrInvalidEntity, s)
	}
	return kind, nil
}

func parseAccountType(s string) (model.AccountType, error) {
	kind := model.AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: account type %q", common.ErrInvalidEntity, s)
	}
	return kind, nil
}

func parseBudgetPeriod(s string) (model.BudgetPeriod, error) {
	p := model.BudgetPeriod(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: budget period %q", common.ErrInvalidEntity, s)
	}
	return p, nil
}

// windowEnd returns the last day of a budget window of period starting at start.
func windowEnd(period model.BudgetPeriod, start model.Date) model.Date {
	switch period {
	case model.PeriodWeekly:
		return start.AddDays(6)
	case model.PeriodYearly:
		return start.AddMonths(12).AddDays(-1)
	default:
		return start.AddMonths(1).AddDays(-1)
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
