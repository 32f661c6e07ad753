package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/report"
)

func transactionsCmd(rt *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage income and expense transactions",
	}

	cmd.AddCommand(listTransactionsCmd(rt))
	cmd.AddCommand(addTransactionCmd(rt))
	cmd.AddCommand(updateTransactionCmd(rt))
	cmd.AddCommand(deleteTransactionCmd(rt))

	return cmd
}

func listTransactionsCmd(rt *rootOptions) *cobra.Command {
	var kind, category, account, search, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			filter := report.Filter{Search: search}
			if kind != "" {
				if filter.Type, err = parseTransactionType(kind); err != nil {
					return err
				}
			}
			if category != "" {
				c, err := findCategory(s.store, category)
				if err != nil {
					return err
				}
				filter.Category = c.ID
			}
			if account != "" {
				a, err := findAccount(s.store, account)
				if err != nil {
					return err
				}
				filter.Account = a.ID
			}
			if from != "" {
				if filter.From, err = parseDate(from); err != nil {
					return err
				}
			}
			if to != "" {
				if filter.To, err = parseDate(to); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			txns := report.FilterTransactions(s.store.Transactions(), filter)
			if len(txns) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No transactions found."))
				return nil
			}

			categories := categoryNames(s.store)
			accounts := accountNames(s.store)
			rows := make([][]string, 0, len(txns))
			for _, t := range txns {
				rows = append(rows, []string{
					t.Date.String(),
					t.Description,
					nameOr(categories, t.Category, report.Uncategorized),
					nameOr(accounts, t.Account, "-"),
					cli.AmountStyle(t.Type).Render(s.money.Signed(t.Amount, t.Type)),
					t.ID,
				})
			}
			fmt.Fprintln(out, cli.RenderTable(
				[]string{"Date", "Description", "Category", "Account", "Amount", "ID"}, rows))
			fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d transaction(s)", len(txns))))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", "only income or expense")
	cmd.Flags().StringVar(&category, "category", "", "category name or id")
	cmd.Flags().StringVar(&account, "account", "", "account name or id")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive description search")
	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")

	return cmd
}

func addTransactionCmd(rt *rootOptions) *cobra.Command {
	var date, description, amount, kind, category, account string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			in := model.TransactionInput{Description: description, Date: model.Today()}
			if date != "" {
				if in.Date, err = parseDate(date); err != nil {
					return err
				}
			}
			if in.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if in.Type, err = parseTransactionType(kind); err != nil {
				return err
			}
			if category != "" {
				c, err := findCategory(s.store, category)
				if err != nil {
					return err
				}
				in.Category = c.ID
			}
			if account != "" {
				a, err := findAccount(s.store, account)
				if err != nil {
					return err
				}
				in.Account = a.ID
			}

			t, err := s.store.AddTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s on %s (%s)",
				t.Type, s.money.Format(t.Amount), t.Date, t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "what the money was for")
	cmd.Flags().StringVar(&amount, "amount", "", "non-negative amount")
	cmd.Flags().StringVar(&kind, "type", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "category name or id")
	cmd.Flags().StringVar(&account, "account", "", "account name or id")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateTransactionCmd(rt *rootOptions) *cobra.Command {
	var date, description, amount, kind, category, account string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.store.Transaction(args[0]); err != nil {
				return err
			}

			var patch model.TransactionPatch
			flags := cmd.Flags()
			if flags.Changed("date") {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("amount") {
				a, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &a
			}
			if flags.Changed("type") {
				k, err := parseTransactionType(kind)
				if err != nil {
					return err
				}
				patch.Type = &k
			}
			if flags.Changed("category") {
				c, err := findCategory(s.store, category)
				if err != nil {
					return err
				}
				patch.Category = &c.ID
			}
			if flags.Changed("account") {
				a, err := findAccount(s.store, account)
				if err != nil {
					return err
				}
				patch.Account = &a.ID
			}
			if patch.IsEmpty() {
				return common.NewUserError("nothing to update", errors.New("no fields given"))
			}

			if err := s.store.UpdateTransaction(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated transaction "+args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "what the money was for")
	cmd.Flags().StringVar(&amount, "amount", "", "non-negative amount")
	cmd.Flags().StringVar(&kind, "type", "", "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "category name or id")
	cmd.Flags().StringVar(&account, "account", "", "account name or id")

	return cmd
}

func deleteTransactionCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.store.DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted transaction "+args[0]))
			return nil
		},
	}
}
