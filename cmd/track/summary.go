package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/report"
	"github.com/Veraticus/expense-track/internal/service"
)

// maxBudgetsShown caps the budget list on the dashboard.
const maxBudgetsShown = 5

func summaryCmd(rt *rootOptions) *cobra.Command {
	var (
		period   string
		category string
		compare  string
		today    string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses and budgets for a period",
		Long: `Show the dashboard for a period: income, expenses, net change and total
balance, expenses by category, daily activity and the most used budgets.

Periods: this-month, last-month, 3months, 6months, 12months.
With --category, compare that category's spending in the period against last
month (--compare last-month) or the window of equal length just before it
(--compare previous).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := report.ParsePeriod(period)
			if err != nil {
				return err
			}
			with, err := report.ParseCompareWith(compare)
			if err != nil {
				return err
			}
			now := model.Today()
			if today != "" {
				if now, err = parseDate(today); err != nil {
					return err
				}
			}

			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if category != "" {
				c, err := findCategory(s.store, category)
				if err != nil {
					return err
				}
				current := p.Range(now)
				printComparison(out, s, c, current, with.Range(current, now))
				return nil
			}

			printDashboard(out, s, p, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", string(report.PeriodThisMonth), "reporting period")
	cmd.Flags().StringVar(&category, "category", "", "compare one category across two windows")
	cmd.Flags().StringVar(&compare, "compare", string(report.CompareLastMonth), "comparison window with --category (last-month, previous)")
	cmd.Flags().StringVar(&today, "today", "", "report as of this date (YYYY-MM-DD)")
	_ = cmd.Flags().MarkHidden("today")

	return cmd
}

func printDashboard(out io.Writer, s *session, p report.Period, today model.Date) {
	txns := s.store.Transactions()
	r := p.Range(today)
	sum := report.Summarize(txns, s.store.Accounts(), r)

	totals := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s..%s  (%d transactions)", r.Start, r.End, sum.Transactions),
		"Income:        "+cli.IncomeStyle.Render(s.money.Format(sum.Income)),
		"Expenses:      "+cli.ExpenseStyle.Render(s.money.Format(sum.Expenses)),
		"Net change:    "+cli.AmountStyle(netType(sum)).Render(s.money.Format(sum.Net)),
		"Total balance: "+s.money.Format(sum.TotalBalance),
	)
	fmt.Fprintln(out, cli.RenderBox(p.Label(), totals))

	byCategory := report.ExpensesByCategory(txns, s.store.Categories(), r)
	if len(byCategory) > 0 {
		rows := make([][]string, 0, len(byCategory))
		for _, ct := range byCategory {
			rows = append(rows, []string{ct.Name, s.money.Format(ct.Total)})
		}
		fmt.Fprintln(out, cli.FormatTitle("Expenses by category"))
		fmt.Fprintln(out, cli.RenderTable([]string{"Category", "Spent"}, rows))
	}

	var active [][]string
	for _, day := range report.DailyTrend(txns, today, p.TrendDays()) {
		if day.Income.IsZero() && day.Expense.IsZero() {
			continue
		}
		active = append(active, []string{
			day.Date.String(),
			cli.IncomeStyle.Render(s.money.Format(day.Income)),
			cli.ExpenseStyle.Render(s.money.Format(day.Expense)),
		})
	}
	if len(active) > 0 {
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Daily activity (last %d days)", p.TrendDays())))
		fmt.Fprintln(out, cli.RenderTable([]string{"Date", "Income", "Expenses"}, active))
	}

	progress := budget.ByUsage(s.store.Budgets())
	if len(progress) > maxBudgetsShown {
		progress = progress[:maxBudgetsShown]
	}
	if len(progress) > 0 {
		lines := make([]string, 0, len(progress))
		for _, bp := range progress {
			lines = append(lines, cli.StatusStyle(bp.Status).Render(fmt.Sprintf("%-20s %s %3d%%  %s of %s",
				bp.Budget.Name, cli.ProgressGauge(bp.Percent, 20), bp.Percent,
				s.money.Format(bp.Budget.Spent), s.money.Format(bp.Budget.Amount))))
		}
		fmt.Fprintln(out, cli.FormatTitle("Budgets"))
		fmt.Fprintln(out, strings.Join(lines, "\n"))
	}
}

func printComparison(out io.Writer, s *session, c model.Category, current, previous service.DateRange) {
	cmp := report.CompareCategory(s.store.Transactions(), c.ID, current, previous)
	change := cmp.PercentageChange.StringFixed(2)
	if cmp.PercentageChange.IsPositive() {
		change = "+" + change
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s..%s: %s", current.Start, current.End, s.money.Format(cmp.CurrentTotal)),
		fmt.Sprintf("%s..%s: %s", previous.Start, previous.End, s.money.Format(cmp.PreviousTotal)),
		fmt.Sprintf("Change: %s%%", change),
	)
	fmt.Fprintln(out, cli.RenderBox(c.Name, body))
}

func netType(sum report.Summary) model.TransactionType {
	if sum.Net.IsNegative() {
		return model.TypeExpense
	}
	return model.TypeIncome
}
