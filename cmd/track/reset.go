package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/cli"
)

func resetCmd(rt *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all data with the default categories and accounts",
		Long: `Reset deletes every transaction and budget and restores the default
categories and accounts (or empty collections with --no-seed).

A checkpoint is taken first so the previous state can be restored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := rt.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprintf(out, "This will delete %d transaction(s) and %d budget(s).\n",
					len(s.store.Transactions()), len(s.store.Budgets()))
				fmt.Fprint(out, "Are you sure you want to continue? [y/N]: ")

				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					fmt.Fprintln(out, cli.FormatInfo("Reset cancelled."))
					return nil
				}
			}

			if manager, err := s.checkpoints(); err == nil {
				if _, err := manager.AutoCheckpoint(ctx, "reset"); err != nil {
					return err
				}
			}

			if err := s.store.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Reset complete: %d categories, %d account(s)",
				len(s.store.Categories()), len(s.store.Accounts()))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
