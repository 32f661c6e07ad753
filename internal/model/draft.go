package model

import "github.com/shopspring/decimal"

// Draft is a parsed import row that has not been given a store identifier.
//
// CategoryName and AccountName carry the free-text hints from the source
// file; Category and Account hold the resolved identifiers (empty when
// nothing could be resolved).
type Draft struct {
	Date         Date
	Amount       decimal.Decimal
	Description  string
	Type         TransactionType
	CategoryName string
	AccountName  string
	Category     string
	Account      string
	Line         int
}

// Input converts a resolved draft into a transaction input.
func (d Draft) Input() TransactionInput {
	return TransactionInput{
		Date:        d.Date,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Type:        d.Type,
		Account:     d.Account,
	}
}

// Inputs converts a batch of drafts, preserving order.
func Inputs(drafts []Draft) []TransactionInput {
	inputs := make([]TransactionInput, 0, len(drafts))
	for _, d := range drafts {
		inputs = append(inputs, d.Input())
	}
	return inputs
}
