package testutil

import "github.com/Veraticus/expense-track/internal/model"

// FixtureCategory is one category in a fixture.
type FixtureCategory struct {
	Name string
	Type model.TransactionType
}

// Fixture is a predefined set of categories for tests.
type Fixture interface {
	Name() string
	Categories() []FixtureCategory
}

type fixture struct {
	name       string
	categories []FixtureCategory
}

func (f *fixture) Name() string                  { return f.name }
func (f *fixture) Categories() []FixtureCategory { return f.categories }

// Predefined fixtures.
var (
	// FixtureMinimal has one expense and one income category.
	FixtureMinimal Fixture = &fixture{
		name: "Minimal",
		categories: []FixtureCategory{
			{Name: "Groceries", Type: model.TypeExpense},
			{Name: "Salary", Type: model.TypeIncome},
		},
	}

	// FixtureHousehold covers the usual monthly spending and earning categories.
	FixtureHousehold Fixture = &fixture{
		name: "Household",
		categories: []FixtureCategory{
			{Name: "Groceries", Type: model.TypeExpense},
			{Name: "Dining Out", Type: model.TypeExpense},
			{Name: "Housing", Type: model.TypeExpense},
			{Name: "Utilities", Type: model.TypeExpense},
			{Name: "Salary", Type: model.TypeIncome},
			{Name: "Freelance", Type: model.TypeIncome},
		},
	}
)

// NewCompositeFixture combines fixtures in order, dropping repeated names.
func NewCompositeFixture(name string, fixtures ...Fixture) Fixture {
	seen := make(map[string]bool)
	var categories []FixtureCategory
	for _, f := range fixtures {
		for _, c := range f.Categories() {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			categories = append(categories, c)
		}
	}
	return &fixture{name: name, categories: categories}
}
