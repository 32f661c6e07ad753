// Package importer runs the file import pipeline: read, parse, resolve names
// against the store, then commit every draft in one bulk write.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/csvimport"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/ofx"
	"github.com/Veraticus/expense-track/internal/resolve"
	"github.com/Veraticus/expense-track/internal/service"
)

// Format identifies a supported import file type.
type Format string

// Supported formats.
const (
	FormatCSV Format = "csv"
	FormatOFX Format = "ofx"
)

// DetectFormat picks the format from the file extension, case-insensitively.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".ofx", ".qfx":
		return FormatOFX, nil
	}
	return "", fmt.Errorf("%w: %s", common.ErrInvalidFileType, filepath.Base(path))
}

// Target is the part of the entity store an import needs.
type Target interface {
	Categories() []model.Category
	Accounts() []model.Account
	ImportTransactions(ctx context.Context, inputs []model.TransactionInput) ([]model.Transaction, error)
}

// Result describes one import run.
type Result struct {
	Format     Format
	Drafts     []model.Draft
	Imported   []model.Transaction
	Skipped    []csvimport.SkippedLine
	Resolution resolve.Summary
	Statements []StatementAccount
	DryRun     bool
}

// StatementAccount is an account id found in an OFX/QFX file and the
// account its transactions resolve to.
type StatementAccount struct {
	StatementID string
	Account     string
	Outcome     resolve.Outcome
}

// Importer imports files into a Target.
type Importer struct {
	target       Target
	progress     service.ProgressReporter
	beforeCommit func(ctx context.Context) error
}

// Option configures an Importer.
type Option func(*Importer)

// WithProgress reports CSV parse progress to r.
func WithProgress(r service.ProgressReporter) Option {
	return func(i *Importer) {
		if r != nil {
			i.progress = r
		}
	}
}

// WithBeforeCommit runs fn after parsing and resolution succeed but before
// anything is written. An error from fn aborts the import.
func WithBeforeCommit(fn func(ctx context.Context) error) Option {
	return func(i *Importer) {
		i.beforeCommit = fn
	}
}

// New creates an importer writing into target.
func New(target Target, opts ...Option) *Importer {
	i := &Importer{
		target:   target,
		progress: service.NopProgress{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import parses path and commits every resolved draft. Either all drafts
// are stored or none are.
func (i *Importer) Import(ctx context.Context, path string) (*Result, error) {
	result, err := i.prepare(ctx, path)
	if err != nil {
		return nil, err
	}

	if i.beforeCommit != nil {
		if err := i.beforeCommit(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare import: %w", err)
		}
	}

	imported, err := i.target.ImportTransactions(ctx, model.Inputs(result.Drafts))
	if err != nil {
		return nil, fmt.Errorf("failed to import transactions: %w", err)
	}
	result.Imported = imported

	common.LogInfo("imported transactions", common.Fields{
		"file":     filepath.Base(path),
		"format":   result.Format,
		"imported": len(imported),
		"skipped":  len(result.Skipped),
	})
	return result, nil
}

// DryRun parses and resolves path without writing anything.
func (i *Importer) DryRun(ctx context.Context, path string) (*Result, error) {
	result, err := i.prepare(ctx, path)
	if err != nil {
		return nil, err
	}
	result.DryRun = true
	return result, nil
}

func (i *Importer) prepare(ctx context.Context, path string) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path is supplied by the user on purpose
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &common.FileReadError{Path: path, Err: err}
	}

	result := &Result{Format: format}
	switch format {
	case FormatCSV:
		parsed, err := csvimport.NewParser(csvimport.WithProgress(i.progress)).Parse(ctx, string(content))
		if err != nil {
			return nil, err
		}
		result.Drafts = parsed.Drafts
		result.Skipped = parsed.Skipped
	case FormatOFX:
		parser := ofx.NewParser()
		drafts, err := parser.ParseFile(ctx, bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		result.Drafts = drafts

		ids, err := parser.Accounts(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			result.Statements = append(result.Statements, StatementAccount{StatementID: id})
		}
	}

	if len(result.Drafts) == 0 {
		return nil, common.ErrNoValidRows
	}

	resolver := resolve.New(i.target.Categories(), i.target.Accounts())
	result.Drafts, result.Resolution = resolver.ResolveAll(result.Drafts)
	for n, stmt := range result.Statements {
		result.Statements[n].Account, result.Statements[n].Outcome, _ = resolver.Account(stmt.StatementID)
	}
	return result, nil
}
