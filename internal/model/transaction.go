// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether money came in or went out.
// Amounts are always stored non-negative; the sign lives here.
type TransactionType string

const (
	// TypeIncome marks money received.
	TypeIncome TransactionType = "income"
	// TypeExpense marks money spent.
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType matches s case-insensitively against "income".
// Anything else, including the empty string, is an expense.
func ParseTransactionType(s string) TransactionType {
	if strings.EqualFold(strings.TrimSpace(s), string(TypeIncome)) {
		return TypeIncome
	}
	return TypeExpense
}

// TypeFromSign infers the type from a signed amount: negative is an expense.
func TypeFromSign(amount decimal.Decimal) TransactionType {
	if amount.IsNegative() {
		return TypeExpense
	}
	return TypeIncome
}

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single recorded income or expense.
type Transaction struct {
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Account     string          `json:"account"`
}

// TransactionInput holds the fields of a transaction that has not been stored yet.
type TransactionInput struct {
	Date        Date
	Amount      decimal.Decimal
	Description string
	Category    string
	Type        TransactionType
	Account     string
}

// Transaction turns the input into a stored transaction with the given id.
func (in TransactionInput) Transaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Type:        in.Type,
		Account:     in.Account,
	}
}

// TransactionPatch is a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Date        *Date
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	Type        *TransactionType
	Account     *string
}

// Apply merges the non-nil fields of p into t.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Account != nil {
		t.Account = *p.Account
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Date == nil && p.Amount == nil && p.Description == nil &&
		p.Category == nil && p.Type == nil && p.Account == nil
}
