package store

import (
	"fmt"
	"strings"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
)

var errInvalid = common.ErrInvalidEntity

func validateTransaction(t model.Transaction) error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction is missing a date", errInvalid)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: transaction amount %s is negative", errInvalid, t.Amount)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: transaction type %q", errInvalid, t.Type)
	}
	return nil
}

func validateCategory(c model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is empty", errInvalid)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: category type %q", errInvalid, c.Type)
	}
	return nil
}

func validateBudget(b model.Budget) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: budget name is empty", errInvalid)
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: budget amount %s must be positive", errInvalid, b.Amount)
	}
	if !b.Period.Valid() {
		return fmt.Errorf("%w: budget period %q", errInvalid, b.Period)
	}
	if b.Category == "" {
		return fmt.Errorf("%w: budget has no category", errInvalid)
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return fmt.Errorf("%w: budget window needs a start and end date", errInvalid)
	}
	if b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("%w: budget ends %s before it starts %s", errInvalid, b.EndDate, b.StartDate)
	}
	return nil
}

func validateAccount(a model.Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is empty", errInvalid)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: account type %q", errInvalid, a.Type)
	}
	return nil
}
