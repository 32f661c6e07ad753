// Package resolve maps the free-text category and account names found in
// imported rows onto stored identifiers.
//
// Matching is best effort: names compare case-insensitively and the first
// candidate in store order wins, even when several share a name. Ambiguous
// matches are counted but never rejected.
package resolve

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/expense-track/internal/model"
)

// Outcome describes how one identifier was resolved.
type Outcome int

// Resolution outcomes.
const (
	Unresolved Outcome = iota
	Matched
	Fallback
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Fallback:
		return "fallback"
	default:
		return "unresolved"
	}
}

// Summary counts resolution outcomes over a batch.
type Summary struct {
	Categories map[Outcome]int
	Accounts   map[Outcome]int
	Ambiguous  int
}

func newSummary() Summary {
	return Summary{
		Categories: make(map[Outcome]int),
		Accounts:   make(map[Outcome]int),
	}
}

// Resolver resolves names against a snapshot of categories and accounts.
type Resolver struct {
	categories []model.Category
	accounts   []model.Account
}

// New creates a resolver over the given collections, kept in store order.
func New(categories []model.Category, accounts []model.Account) *Resolver {
	return &Resolver{
		categories: categories,
		accounts:   accounts,
	}
}

// Category returns the id for name among categories of type kind.
// Without a same-type name match it falls back to the first category of
// that type; with no category of that type it returns "".
func (r *Resolver) Category(name string, kind model.TransactionType) (string, Outcome, bool) {
	name = strings.TrimSpace(name)
	fallback := ""
	matchID := ""
	matches := 0

	for _, c := range r.categories {
		if c.Type != kind {
			continue
		}
		if fallback == "" {
			fallback = c.ID
		}
		if name != "" && strings.EqualFold(c.Name, name) {
			if matches == 0 {
				matchID = c.ID
			}
			matches++
		}
	}

	switch {
	case matches > 0:
		return matchID, Matched, matches > 1
	case fallback != "":
		return fallback, Fallback, false
	default:
		return "", Unresolved, false
	}
}

// Account returns the id for name among all accounts regardless of type,
// falling back to the first account, or "" when there are none.
func (r *Resolver) Account(name string) (string, Outcome, bool) {
	name = strings.TrimSpace(name)
	matchID := ""
	matches := 0

	if name != "" {
		for _, a := range r.accounts {
			if strings.EqualFold(a.Name, name) {
				if matches == 0 {
					matchID = a.ID
				}
				matches++
			}
		}
	}

	switch {
	case matches > 0:
		return matchID, Matched, matches > 1
	case len(r.accounts) > 0:
		return r.accounts[0].ID, Fallback, false
	default:
		return "", Unresolved, false
	}
}

// Resolve fills in the category and account identifiers of d.
func (r *Resolver) Resolve(d model.Draft) model.Draft {
	d.Category, _, _ = r.Category(d.CategoryName, d.Type)
	d.Account, _, _ = r.Account(d.AccountName)
	return d
}

// ResolveAll resolves a batch, preserving order, and summarizes the outcomes.
func (r *Resolver) ResolveAll(drafts []model.Draft) ([]model.Draft, Summary) {
	summary := newSummary()
	out := make([]model.Draft, 0, len(drafts))

	for _, d := range drafts {
		var (
			catOutcome, accOutcome Outcome
			catAmbiguous, accAmbig bool
		)
		d.Category, catOutcome, catAmbiguous = r.Category(d.CategoryName, d.Type)
		d.Account, accOutcome, accAmbig = r.Account(d.AccountName)

		summary.Categories[catOutcome]++
		summary.Accounts[accOutcome]++
		if catAmbiguous || accAmbig {
			summary.Ambiguous++
			slog.Debug("ambiguous name resolved to first match",
				"line", d.Line,
				"category", d.CategoryName,
				"account", d.AccountName)
		}
		out = append(out, d)
	}
	return out, summary
}
