package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/service"
)

func checkpointCmd(rt *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage data checkpoints",
		Long: `Create, list, restore, and delete checkpoints.

A checkpoint is a snapshot of every transaction, category, budget and account.
One is taken automatically before each import; the five most recent automatic
checkpoints are kept.`,
		Example: `  # Save the current state
  track checkpoint create before-cleanup -m "before deleting old budgets"

  # Go back to it
  track checkpoint restore before-cleanup`,
	}

	cmd.AddCommand(createCheckpointCmd(rt))
	cmd.AddCommand(listCheckpointsCmd(rt))
	cmd.AddCommand(restoreCheckpointCmd(rt))
	cmd.AddCommand(deleteCheckpointCmd(rt))

	return cmd
}

func createCheckpointCmd(rt *rootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [tag]",
		Short: "Create a new checkpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			manager, err := s.checkpoints()
			if err != nil {
				return err
			}

			tag := ""
			if len(args) == 1 {
				tag = args[0]
			}
			meta, err := manager.Create(cmd.Context(), tag, description)
			if err != nil {
				return fmt.Errorf("failed to create checkpoint: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Created checkpoint "+meta.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "message", "m", "", "description of the checkpoint")

	return cmd
}

func listCheckpointsCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checkpoints, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			manager, err := s.checkpoints()
			if err != nil {
				return err
			}
			checkpoints, err := manager.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(checkpoints) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No checkpoints found."))
				return nil
			}

			rows := make([][]string, 0, len(checkpoints))
			for _, cp := range checkpoints {
				rows = append(rows, []string{
					cp.ID,
					formatTime(cp.CreatedAt),
					strconv.Itoa(cp.Counts[service.SlotTransactions]),
					strconv.Itoa(cp.Counts[service.SlotCategories]),
					strconv.Itoa(cp.Counts[service.SlotBudgets]),
					strconv.Itoa(cp.Counts[service.SlotAccounts]),
					formatRevisions(cp.Revisions),
					cp.Description,
				})
			}
			fmt.Fprintln(out, cli.RenderTable(
				[]string{"Tag", "Created", "Transactions", "Categories", "Budgets", "Accounts", "Revisions (T/C/B/A)", "Description"}, rows))
			return nil
		},
	}
}

func restoreCheckpointCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <tag>",
		Short: "Replace all data with a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rt.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			manager, err := s.checkpoints()
			if err != nil {
				return err
			}
			if err := manager.Restore(ctx, args[0]); err != nil {
				return err
			}
			if err := s.store.Reload(ctx); err != nil {
				return fmt.Errorf("restored checkpoint could not be loaded: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Restored checkpoint %s: %d transaction(s), %d categories, %d budget(s), %d account(s)",
				args[0], len(s.store.Transactions()), len(s.store.Categories()),
				len(s.store.Budgets()), len(s.store.Accounts()))))
			return nil
		},
	}
}

func deleteCheckpointCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			manager, err := s.checkpoints()
			if err != nil {
				return err
			}
			if err := manager.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted checkpoint "+args[0]))
			return nil
		},
	}
}

// formatRevisions renders slot write revisions in table column order.
func formatRevisions(revisions map[service.Slot]int) string {
	if len(revisions) == 0 {
		return "-"
	}
	parts := make([]string, 0, 4)
	for _, slot := range []service.Slot{service.SlotTransactions, service.SlotCategories, service.SlotBudgets, service.SlotAccounts} {
		if rev, ok := revisions[slot]; ok {
			parts = append(parts, strconv.Itoa(rev))
		} else {
			parts = append(parts, "-")
		}
	}
	return strings.Join(parts, "/")
}
