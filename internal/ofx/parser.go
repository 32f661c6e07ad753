// Package ofx reads OFX and QFX statement downloads into import drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that are missing their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// categoryHints maps OFX transaction types to seed category names.
var categoryHints = map[string]string{
	"INT":       "Investments",
	"DIV":       "Investments",
	"DIRECTDEP": "Salary",
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file into drafts, bank statements first.
// Each statement's account id becomes the drafts' account name hint.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Draft, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFileRead, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, common.ErrEmptyFile
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var drafts []model.Draft
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			drafts = p.appendStatement(drafts, stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			drafts = p.appendStatement(drafts, stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
		}
	}

	slog.Info("Parsed OFX file",
		"drafts", len(drafts),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return drafts, nil
}

func (p *Parser) appendStatement(drafts []model.Draft, list *ofxgo.TransactionList, accountID string) []model.Draft {
	if list == nil {
		return drafts
	}
	for _, ofxTx := range list.Transactions {
		d, err := p.convertTransaction(ofxTx, accountID)
		if err != nil {
			slog.Warn("Skipping OFX transaction",
				"fitid", string(ofxTx.FiTID),
				"error", err)
			continue
		}
		d.Line = len(drafts) + 1
		drafts = append(drafts, d)
	}
	return drafts
}

// convertTransaction converts an OFX transaction to a draft. OFX signs
// debits negative; the draft keeps the magnitude and records the direction
// as its type.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Draft, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Draft{}, fmt.Errorf("invalid amount %q: %w", ofxTx.TrnAmt.String(), err)
	}
	if ofxTx.DtPosted.IsZero() {
		return model.Draft{}, fmt.Errorf("missing posted date")
	}

	return model.Draft{
		Date:         model.DateOf(ofxTx.DtPosted.Time),
		Amount:       amount.Abs(),
		Description:  p.extractMerchantName(ofxTx),
		Type:         model.TypeFromSign(amount),
		CategoryName: categoryHints[fmt.Sprintf("%v", ofxTx.TrnType)],
		AccountName:  accountID,
	}, nil
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually cleaner than NAME
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " date stamps
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// Accounts returns the distinct account ids in the file, in order of appearance.
func (p *Parser) Accounts(reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFileRead, err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id ofxgo.String) {
		if id != "" && !seen[string(id)] {
			seen[string(id)] = true
			accounts = append(accounts, string(id))
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(stmt.BankAcctFrom.AcctID)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(stmt.CCAcctFrom.AcctID)
		}
	}
	return accounts, nil
}
