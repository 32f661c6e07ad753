package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
)

func accountsCmd(rt *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts and their balances",
	}

	cmd.AddCommand(listAccountsCmd(rt))
	cmd.AddCommand(addAccountCmd(rt))
	cmd.AddCommand(updateAccountCmd(rt))
	cmd.AddCommand(deleteAccountCmd(rt))

	return cmd
}

func listAccountsCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with the total balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			accounts := s.store.Accounts()
			if len(accounts) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No accounts yet. Use 'track accounts add' to create one."))
				return nil
			}

			rows := make([][]string, 0, len(accounts)+1)
			for _, a := range accounts {
				rows = append(rows, []string{a.Name, string(a.Type), s.money.Format(a.Balance), a.ID})
			}
			rows = append(rows, []string{"Total", "", s.money.Format(s.store.TotalBalance()), ""})
			fmt.Fprintln(out, cli.RenderTable([]string{"Name", "Type", "Balance", "ID"}, rows))
			return nil
		},
	}
}

func addAccountCmd(rt *rootOptions) *cobra.Command {
	var kind, balance string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			in := model.AccountInput{Name: args[0]}
			if in.Type, err = parseAccountType(kind); err != nil {
				return err
			}
			if in.Balance, err = parseAmount(balance); err != nil {
				return err
			}

			a, err := s.store.AddAccount(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s account %s with %s (%s)",
				a.Type, a.Name, s.money.Format(a.Balance), a.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(model.AccountChecking), "checking, savings, credit or investment")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance")

	return cmd
}

func updateAccountCmd(rt *rootOptions) *cobra.Command {
	var name, kind, balance string

	cmd := &cobra.Command{
		Use:   "update <name-or-id>",
		Short: "Change an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := findAccount(s.store, args[0])
			if err != nil {
				return err
			}

			var patch model.AccountPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("type") {
				t, err := parseAccountType(kind)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if flags.Changed("balance") {
				b, err := parseAmount(balance)
				if err != nil {
					return err
				}
				patch.Balance = &b
			}
			if patch == (model.AccountPatch{}) {
				return common.NewUserError("nothing to update", errors.New("no fields given"))
			}

			if err := s.store.UpdateAccount(cmd.Context(), a.ID, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated account "+a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&kind, "type", "", "checking, savings, credit or investment")
	cmd.Flags().StringVar(&balance, "balance", "", "current balance")

	return cmd
}

func deleteAccountCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete an account no transaction uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := findAccount(s.store, args[0])
			if err != nil {
				return err
			}
			if err := s.store.DeleteAccount(cmd.Context(), a.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted account "+a.Name))
			return nil
		},
	}
}
