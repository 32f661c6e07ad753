// Package csvimport turns comma-delimited bank exports into draft transactions.
//
// The format is deliberately simple: one header line, fields matched by name
// case-insensitively, no quoting and no embedded commas.
package csvimport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

// Header field names.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldType        = "type"
	FieldAccount     = "account"
)

// RequiredFields must all be present in the header, in this reporting order.
var RequiredFields = []string{FieldDate, FieldDescription, FieldAmount}

// SkippedLine records a data line that produced no draft.
type SkippedLine struct {
	Reason string
	Line   int
}

// Result is the outcome of parsing one file.
type Result struct {
	Drafts    []model.Draft
	Skipped   []SkippedLine
	DataLines int
}

// Parser implements CSV parsing.
type Parser struct {
	progress service.ProgressReporter
}

// Option configures a Parser.
type Option func(*Parser)

// WithProgress reports the fraction of data lines processed to r.
func WithProgress(r service.ProgressReporter) Option {
	return func(p *Parser) {
		if r != nil {
			p.progress = r
		}
	}
}

// NewParser creates a new CSV parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{progress: service.NopProgress{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads all of reader and parses it.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Result, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFileRead, err)
	}
	return p.Parse(ctx, string(content))
}

// columns holds the resolved index of each recognized header field, -1 when absent.
type columns struct {
	date, description, amount int
	category, kind, account   int
}

// minFields is the number of fields a line needs to reach every required column.
func (c columns) minFields() int {
	return max(c.date, c.description, c.amount) + 1
}

// Parse converts CSV content into drafts. Category and account identifiers
// are left empty; only the raw names are carried forward.
func (p *Parser) Parse(ctx context.Context, content string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")
	headerAt := -1
	nonBlank := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headerAt < 0 {
			headerAt = i
		}
		nonBlank++
	}
	if nonBlank < 2 {
		return nil, common.ErrEmptyFile
	}

	cols, err := parseHeader(lines[headerAt])
	if err != nil {
		return nil, err
	}

	data := lines[headerAt+1:]
	result := &Result{}
	p.progress.Start(len(data))
	defer p.progress.Finish()

	for i, line := range data {
		lineNo := headerAt + i + 2
		p.progress.Advance(i + 1)

		if strings.TrimSpace(line) == "" {
			continue
		}
		result.DataLines++

		draft, reason := parseLine(line, cols)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedLine{Line: lineNo, Reason: reason})
			slog.Debug("skipping csv line", "line", lineNo, "reason", reason)
			continue
		}
		draft.Line = lineNo
		result.Drafts = append(result.Drafts, draft)
	}

	slog.Debug("parsed csv",
		"data_lines", result.DataLines,
		"drafts", len(result.Drafts),
		"skipped", len(result.Skipped))
	return result, nil
}

func parseHeader(line string) (columns, error) {
	headers := splitFields(line)
	for i := range headers {
		headers[i] = strings.ToLower(headers[i])
	}

	index := func(name string) int {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
		return -1
	}

	var missing []string
	for _, field := range RequiredFields {
		if index(field) < 0 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return columns{}, &common.MissingHeadersError{Fields: missing}
	}

	return columns{
		date:        index(FieldDate),
		description: index(FieldDescription),
		amount:      index(FieldAmount),
		category:    index(FieldCategory),
		kind:        index(FieldType),
		account:     index(FieldAccount),
	}, nil
}

// parseLine returns the draft for one data line, or a non-empty skip reason.
func parseLine(line string, cols columns) (model.Draft, string) {
	values := splitFields(line)
	if len(values) < cols.minFields() {
		return model.Draft{}, fmt.Sprintf("expected at least %d fields, got %d", cols.minFields(), len(values))
	}

	raw, err := parseAmount(values[cols.amount])
	if err != nil {
		return model.Draft{}, fmt.Sprintf("invalid amount %q", values[cols.amount])
	}

	date, err := model.ParseDate(values[cols.date])
	if err != nil {
		return model.Draft{}, fmt.Sprintf("invalid date %q", values[cols.date])
	}

	var kind model.TransactionType
	if cols.kind >= 0 {
		kind = model.ParseTransactionType(field(values, cols.kind))
	} else {
		kind = model.TypeFromSign(raw)
	}

	return model.Draft{
		Date:         date,
		Description:  values[cols.description],
		Amount:       raw.Abs(),
		Type:         kind,
		CategoryName: field(values, cols.category),
		AccountName:  field(values, cols.account),
	}, ""
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(s, "+"))
}

// splitFields splits on every comma and trims each field. Quoted fields are not supported.
func splitFields(line string) []string {
	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// field returns values[i], or "" when the column is absent or the line is short.
func field(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}
