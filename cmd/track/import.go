package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/config"
	"github.com/Veraticus/expense-track/internal/importer"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/report"
	"github.com/Veraticus/expense-track/internal/resolve"
	"github.com/Veraticus/expense-track/internal/service"
)

func importCmd(rt *rootOptions) *cobra.Command {
	var (
		dryRun       bool
		noCheckpoint bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a CSV, OFX or QFX file",
		Long: `Import transactions from a bank export.

CSV files need a header with date, description and amount columns; category,
type and account are optional. Category and account names are matched against
existing ones case-insensitively, falling back to the first category of the
transaction's type and the first account. Either every row is stored or none.`,
		Example: `  # Preview without saving
  track import statement.csv --dry-run

  # Import an OFX download
  track import checking.ofx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := rt.openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			opts := []importer.Option{}
			if rt.settings.ImportProgress {
				opts = append(opts, importer.WithProgress(cli.NewProgressBar(cmd.ErrOrStderr(), "Parsing")))
			}
			if !dryRun && !noCheckpoint && s.path != config.MemoryDatabase {
				opts = append(opts, importer.WithBeforeCommit(func(ctx context.Context) error {
					manager, err := s.checkpoints()
					if err != nil {
						return err
					}
					_, err = manager.AutoCheckpoint(ctx, "import")
					return err
				}))
			}

			imp := importer.New(s.store, opts...)
			var result *importer.Result
			if dryRun {
				result, err = imp.DryRun(ctx, args[0])
			} else {
				result, err = imp.Import(ctx, args[0])
			}
			if err != nil {
				return err
			}

			printImportResult(out, s, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and resolve without saving")
	cmd.Flags().BoolVar(&noCheckpoint, "no-checkpoint", false, "skip the automatic checkpoint taken before importing")

	return cmd
}

func printImportResult(out io.Writer, s *session, result *importer.Result) {
	if result.DryRun {
		printDrafts(out, s, result.Drafts)
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d %s transaction(s) would be imported", len(result.Drafts), result.Format)))
	} else {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d %s transaction(s)", len(result.Imported), result.Format)))
	}

	if len(result.Statements) > 0 {
		accounts := accountNames(s.store)
		for _, stmt := range result.Statements {
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Statement account %s -> %s (%s)",
				stmt.StatementID, nameOr(accounts, stmt.Account, "none"), stmt.Outcome)))
		}
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped line %d: %s", skipped.Line, skipped.Reason)))
	}

	r := result.Resolution
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf(
		"Categories: %d matched, %d defaulted, %d unresolved. Accounts: %d matched, %d defaulted, %d unresolved.",
		r.Categories[resolve.Matched], r.Categories[resolve.Fallback], r.Categories[resolve.Unresolved],
		r.Accounts[resolve.Matched], r.Accounts[resolve.Fallback], r.Accounts[resolve.Unresolved])))
	if r.Ambiguous > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d name(s) matched more than one entry; the first was used", r.Ambiguous)))
	}
}

func printDrafts(out io.Writer, s *session, drafts []model.Draft) {
	categories := categoryNames(s.store)
	accounts := accountNames(s.store)
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, []string{
			d.Date.String(),
			d.Description,
			nameOr(categories, d.Category, report.Uncategorized),
			nameOr(accounts, d.Account, "-"),
			cli.AmountStyle(d.Type).Render(s.money.Signed(d.Amount, d.Type)),
		})
	}
	fmt.Fprintln(out, cli.RenderTable([]string{"Date", "Description", "Category", "Account", "Amount"}, rows))
}

var _ importer.Target = (service.EntityStore)(nil)
