package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/report"
)

func budgetsCmd(rt *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage category spending limits",
	}

	cmd.AddCommand(listBudgetsCmd(rt))
	cmd.AddCommand(addBudgetCmd(rt))
	cmd.AddCommand(updateBudgetCmd(rt))
	cmd.AddCommand(deleteBudgetCmd(rt))
	cmd.AddCommand(recalcBudgetsCmd(rt))

	return cmd
}

func listBudgetsCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets, most used first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			progress := budget.ByUsage(s.store.Budgets())
			if len(progress) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No budgets yet. Use 'track budgets add' to create one."))
				return nil
			}

			categories := categoryNames(s.store)
			rows := make([][]string, 0, len(progress))
			for _, p := range progress {
				b := p.Budget
				style := cli.StatusStyle(p.Status)
				rows = append(rows, []string{
					b.Name,
					nameOr(categories, b.Category, report.Uncategorized),
					fmt.Sprintf("%s..%s", b.StartDate, b.EndDate),
					s.money.Format(b.Spent) + " / " + s.money.Format(b.Amount),
					style.Render(fmt.Sprintf("%s %3d%%", cli.ProgressGauge(p.Percent, 20), p.Percent)),
					style.Render(string(p.Status)),
					s.money.Format(p.Remaining),
					b.ID,
				})
			}
			fmt.Fprintln(out, cli.RenderTable(
				[]string{"Name", "Category", "Window", "Spent", "Used", "Status", "Remaining", "ID"}, rows))
			return nil
		},
	}
}

func addBudgetCmd(rt *rootOptions) *cobra.Command {
	var category, amount, period, start, end string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a budget for one category",
		Long: `Add a spending limit for one category over an inclusive date window.
The window defaults to the period starting at --start (default: first of this month).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			in := model.BudgetInput{Name: args[0]}
			c, err := findCategory(s.store, category)
			if err != nil {
				return err
			}
			in.Category = c.ID
			if in.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if in.Period, err = parseBudgetPeriod(period); err != nil {
				return err
			}

			in.StartDate = model.Today().StartOfMonth()
			if start != "" {
				if in.StartDate, err = parseDate(start); err != nil {
					return err
				}
			}
			in.EndDate = windowEnd(in.Period, in.StartDate)
			if end != "" {
				if in.EndDate, err = parseDate(end); err != nil {
					return err
				}
			}

			b, err := s.store.AddBudget(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added budget %s: %s spent of %s (%s)",
				b.Name, s.money.Format(b.Spent), s.money.Format(b.Amount), b.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category name or id")
	cmd.Flags().StringVar(&amount, "amount", "", "spending limit")
	cmd.Flags().StringVar(&period, "period", string(model.PeriodMonthly), "weekly, monthly or yearly")
	cmd.Flags().StringVar(&start, "start", "", "first day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the window (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateBudgetCmd(rt *rootOptions) *cobra.Command {
	var name, category, amount, period, start, end string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.store.Budget(args[0]); err != nil {
				return err
			}

			var patch model.BudgetPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("category") {
				c, err := findCategory(s.store, category)
				if err != nil {
					return err
				}
				patch.Category = &c.ID
			}
			if flags.Changed("amount") {
				a, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &a
			}
			if flags.Changed("period") {
				p, err := parseBudgetPeriod(period)
				if err != nil {
					return err
				}
				patch.Period = &p
			}
			if flags.Changed("start") {
				d, err := parseDate(start)
				if err != nil {
					return err
				}
				patch.StartDate = &d
			}
			if flags.Changed("end") {
				d, err := parseDate(end)
				if err != nil {
					return err
				}
				patch.EndDate = &d
			}
			if patch == (model.BudgetPatch{}) {
				return common.NewUserError("nothing to update", errors.New("no fields given"))
			}

			if err := s.store.UpdateBudget(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated budget "+args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&category, "category", "", "category name or id")
	cmd.Flags().StringVar(&amount, "amount", "", "spending limit")
	cmd.Flags().StringVar(&period, "period", "", "weekly, monthly or yearly")
	cmd.Flags().StringVar(&start, "start", "", "first day of the window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the window (YYYY-MM-DD)")

	return cmd
}

func deleteBudgetCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.store.DeleteBudget(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted budget "+args[0]))
			return nil
		},
	}
}

func recalcBudgetsCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Re-derive every budget's spent total from the transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			changed, err := s.store.RecalculateBudgets(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Recalculated %d budget(s), %d changed", len(s.store.Budgets()), len(changed))))
			return nil
		},
	}
}
