package model

import "github.com/shopspring/decimal"

// AccountType describes what kind of account holds the money.
type AccountType string

// Account types.
const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment:
		return true
	}
	return false
}

// Account is a place money is kept. Balance is entered by the user and is
// not derived from transactions.
type Account struct {
	Balance decimal.Decimal `json:"balance"`
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
}

// AccountInput holds the fields of an account that has not been stored yet.
type AccountInput struct {
	Balance decimal.Decimal
	Name    string
	Type    AccountType
}

// Account turns the input into a stored account with the given id.
func (in AccountInput) Account(id string) Account {
	return Account{
		ID:      id,
		Name:    in.Name,
		Type:    in.Type,
		Balance: in.Balance,
	}
}

// AccountPatch is a partial update. Nil fields are left untouched.
type AccountPatch struct {
	Balance *decimal.Decimal
	Name    *string
	Type    *AccountType
}

// Apply merges the non-nil fields of p into a.
func (p AccountPatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Balance != nil {
		a.Balance = *p.Balance
	}
}
