package store

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/model"
)

type seedData struct {
	transactions []model.Transaction
	categories   []model.Category
	budgets      []model.Budget
	accounts     []model.Account
}

// defaultCategories lists the built-in categories, expenses first.
var defaultCategories = []model.CategoryInput{
	{Name: "Groceries", Color: "#4CAF50", Icon: "shopping-cart", Type: model.TypeExpense},
	{Name: "Dining Out", Color: "#FF9800", Icon: "utensils", Type: model.TypeExpense},
	{Name: "Housing", Color: "#3F51B5", Icon: "home", Type: model.TypeExpense},
	{Name: "Transportation", Color: "#009688", Icon: "car", Type: model.TypeExpense},
	{Name: "Utilities", Color: "#607D8B", Icon: "zap", Type: model.TypeExpense},
	{Name: "Entertainment", Color: "#E91E63", Icon: "film", Type: model.TypeExpense},
	{Name: "Shopping", Color: "#9C27B0", Icon: "shopping-bag", Type: model.TypeExpense},
	{Name: "Healthcare", Color: "#F44336", Icon: "heart", Type: model.TypeExpense},
	{Name: "Salary", Color: "#2196F3", Icon: "briefcase", Type: model.TypeIncome},
	{Name: "Freelance", Color: "#00BCD4", Icon: "laptop", Type: model.TypeIncome},
	{Name: "Investments", Color: "#8BC34A", Icon: "trending-up", Type: model.TypeIncome},
	{Name: "Other Income", Color: "#CDDC39", Icon: "plus-circle", Type: model.TypeIncome},
}

// defaultAccounts lists the built-in accounts. The first one is the import fallback.
var defaultAccounts = []model.AccountInput{
	{Name: "Checking", Type: model.AccountChecking, Balance: decimal.Zero},
	{Name: "Savings", Type: model.AccountSavings, Balance: decimal.Zero},
	{Name: "Credit Card", Type: model.AccountCredit, Balance: decimal.Zero},
}

func defaultSeed(newID func() string) seedData {
	seed := seedData{
		transactions: []model.Transaction{},
		budgets:      []model.Budget{},
	}
	for _, in := range defaultCategories {
		seed.categories = append(seed.categories, in.Category(newID()))
	}
	for _, in := range defaultAccounts {
		seed.accounts = append(seed.accounts, in.Account(newID()))
	}
	return seed
}
