package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
)

func categoriesCmd(rt *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long:  `List, add, update, and delete the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd(rt))
	cmd.AddCommand(addCategoryCmd(rt))
	cmd.AddCommand(updateCategoryCmd(rt))
	cmd.AddCommand(deleteCategoryCmd(rt))

	return cmd
}

func listCategoriesCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			categories := s.store.Categories()
			if len(categories) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No categories found. Use 'track categories add' to create one."))
				return nil
			}

			uses := make(map[string]int)
			for _, t := range s.store.Transactions() {
				uses[t.Category]++
			}

			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{
					c.Icon + " " + c.Name,
					cli.AmountStyle(c.Type).Render(string(c.Type)),
					c.Color,
					strconv.Itoa(uses[c.ID]),
					c.ID,
				})
			}
			fmt.Fprintln(out, cli.RenderTable([]string{"Name", "Type", "Color", "Transactions", "ID"}, rows))

			if mismatched := s.store.TypeMismatches(); len(mismatched) > 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf(
					"%d transaction(s) have a type that differs from their category", len(mismatched))))
			}
			return nil
		},
	}
}

func addCategoryCmd(rt *rootOptions) *cobra.Command {
	var kind, color, icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := parseTransactionType(kind)
			if err != nil {
				return err
			}
			c, err := s.store.AddCategory(cmd.Context(), model.CategoryInput{
				Name:  args[0],
				Type:  t,
				Color: color,
				Icon:  icon,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s category %s (%s)", c.Type, c.Name, c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringVar(&color, "color", "#6B7280", "display color")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")

	return cmd
}

func updateCategoryCmd(rt *rootOptions) *cobra.Command {
	var name, kind, color, icon string

	cmd := &cobra.Command{
		Use:   "update <name-or-id>",
		Short: "Change a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := findCategory(s.store, args[0])
			if err != nil {
				return err
			}

			var patch model.CategoryPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("type") {
				t, err := parseTransactionType(kind)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("icon") {
				patch.Icon = &icon
			}
			if patch == (model.CategoryPatch{}) {
				return common.NewUserError("nothing to update", errors.New("no fields given"))
			}

			if err := s.store.UpdateCategory(cmd.Context(), c.ID, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated category "+c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&kind, "type", "", "income or expense")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")

	return cmd
}

func deleteCategoryCmd(rt *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete a category no transaction uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := findCategory(s.store, args[0])
			if err != nil {
				return err
			}
			if err := s.store.DeleteCategory(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted category "+c.Name))
			return nil
		},
	}
}
