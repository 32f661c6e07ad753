package csvimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
)

type recordingProgress struct {
	total    int
	advances []int
	finished bool
}

func (r *recordingProgress) Start(total int)       { r.total = total }
func (r *recordingProgress) Advance(processed int) { r.advances = append(r.advances, processed) }
func (r *recordingProgress) Finish()               { r.finished = true }

func TestParse_BasicFile(t *testing.T) {
	content := "Date,Description,Amount,Category,Account\n" +
		"2024-03-01,Paycheck,2500.00,Salary,Checking\n" +
		"2024-03-02,Farmers market,-42.50,Groceries,Visa\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, result.Drafts, 2)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 2, result.DataLines)

	income := result.Drafts[0]
	assert.Equal(t, "2024-03-01", income.Date.String())
	assert.Equal(t, "Paycheck", income.Description)
	assert.True(t, decimal.NewFromInt(2500).Equal(income.Amount))
	assert.Equal(t, model.TypeIncome, income.Type)
	assert.Equal(t, "Salary", income.CategoryName)
	assert.Equal(t, "Checking", income.AccountName)
	assert.Equal(t, 2, income.Line)
	assert.Empty(t, income.Category)
	assert.Empty(t, income.Account)

	expense := result.Drafts[1]
	assert.Equal(t, model.TypeExpense, expense.Type)
	assert.True(t, decimal.RequireFromString("42.50").Equal(expense.Amount))
	assert.Equal(t, 3, expense.Line)
}

func TestParse_TypeColumn(t *testing.T) {
	content := "date,description,amount,type\n" +
		"2024-03-01,Refund,-20,INCOME\n" +
		"2024-03-02,Rent,1200,expense\n" +
		"2024-03-03,Odd,15,transfer\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, result.Drafts, 3)

	assert.Equal(t, model.TypeIncome, result.Drafts[0].Type)
	assert.True(t, decimal.NewFromInt(20).Equal(result.Drafts[0].Amount), "amount is stored unsigned")
	assert.Equal(t, model.TypeExpense, result.Drafts[1].Type)
	assert.Equal(t, model.TypeExpense, result.Drafts[2].Type)
}

func TestParse_HeaderCaseAndOrder(t *testing.T) {
	content := "AMOUNT , description,DATE\n-9.99, Streaming ,2024-05-10\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, result.Drafts, 1)

	d := result.Drafts[0]
	assert.Equal(t, "Streaming", d.Description)
	assert.Equal(t, "2024-05-10", d.Date.String())
	assert.Equal(t, model.TypeExpense, d.Type)
	assert.True(t, decimal.RequireFromString("9.99").Equal(d.Amount))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		missing []string
	}{
		{name: "empty", content: "", wantErr: common.ErrEmptyFile},
		{name: "blank lines", content: "\n\n  \n", wantErr: common.ErrEmptyFile},
		{name: "header only", content: "date,description,amount\n", wantErr: common.ErrEmptyFile},
		{name: "missing one", content: "date,description\n2024-01-01,x\n", wantErr: common.ErrMissingHeaders, missing: []string{"amount"}},
		{name: "missing all", content: "foo,bar\n1,2\n", wantErr: common.ErrMissingHeaders, missing: []string{"date", "description", "amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(context.Background(), tt.content)
			require.ErrorIs(t, err, tt.wantErr)

			if tt.missing != nil {
				var headersErr *common.MissingHeadersError
				require.True(t, errors.As(err, &headersErr))
				assert.Equal(t, tt.missing, headersErr.Fields)
			}
		})
	}
}

func TestParse_SkipsBadLines(t *testing.T) {
	content := "date,description,amount\n" +
		"2024-03-01,Coffee,-4\n" +
		"\n" +
		"2024-03-02,Too short\n" +
		"2024-03-03,Bad amount,abc\n" +
		"03/04/2024,Bad date,-5\n" +
		"2024-03-05,Tea,+3\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, 5, result.DataLines)
	require.Len(t, result.Drafts, 2)
	assert.Equal(t, "Coffee", result.Drafts[0].Description)
	assert.Equal(t, "Tea", result.Drafts[1].Description)
	assert.Equal(t, model.TypeIncome, result.Drafts[1].Type)
	assert.Equal(t, 7, result.Drafts[1].Line)

	require.Len(t, result.Skipped, 3)
	assert.Equal(t, []int{4, 5, 6}, []int{result.Skipped[0].Line, result.Skipped[1].Line, result.Skipped[2].Line})
	assert.Contains(t, result.Skipped[0].Reason, "fields")
	assert.Contains(t, result.Skipped[1].Reason, "amount")
	assert.Contains(t, result.Skipped[2].Reason, "date")
}

func TestParse_AllLinesShort(t *testing.T) {
	result, err := NewParser().Parse(context.Background(), "date,description,amount\nx\ny,z\n")
	require.NoError(t, err)
	assert.Empty(t, result.Drafts)
	assert.Len(t, result.Skipped, 2)
}

func TestParse_OptionalColumnsMayBeShort(t *testing.T) {
	content := "date,description,amount,category,account\n2024-03-01,Coffee,-4\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, result.Drafts, 1)
	assert.Empty(t, result.Drafts[0].CategoryName)
	assert.Empty(t, result.Drafts[0].AccountName)
}

func TestParse_WindowsLineEndings(t *testing.T) {
	content := "date,description,amount\r\n2024-03-01,Coffee,-4\r\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, result.Drafts, 1)
	assert.True(t, decimal.NewFromInt(4).Equal(result.Drafts[0].Amount))
}

func TestParse_ByteOrderMark(t *testing.T) {
	content := "\ufeffdate,description,amount\r\n2023-07-01,Coffee,-4.50\r\n"

	result, err := NewParser().Parse(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, result.Drafts, 1)
	assert.Equal(t, "2023-07-01", result.Drafts[0].Date.String())
	assert.Equal(t, "Coffee", result.Drafts[0].Description)
	assert.Equal(t, 2, result.Drafts[0].Line)
}

func TestParse_DraftCountMatchesWellFormedLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("date,description,amount\n")
	for i := 0; i < 50; i++ {
		if i%5 == 0 {
			b.WriteString("2024-01-01,short\n")
			continue
		}
		b.WriteString("2024-01-01,item,-1.25\n")
	}

	result, err := NewParser().Parse(context.Background(), b.String())
	require.NoError(t, err)
	assert.Len(t, result.Drafts, 40)
	assert.Len(t, result.Skipped, 10)
}

func TestParse_ReportsProgress(t *testing.T) {
	progress := &recordingProgress{}
	content := "date,description,amount\n2024-03-01,a,1\n2024-03-02,b,2\n"

	_, err := NewParser(WithProgress(progress)).Parse(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, 3, progress.total) // trailing empty line counts
	assert.Equal(t, []int{1, 2, 3}, progress.advances)
	assert.True(t, progress.finished)
}

func TestParse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().Parse(ctx, "date,description,amount\n2024-03-01,a,1\n")
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseFile_ReadError(t *testing.T) {
	_, err := NewParser().ParseFile(context.Background(), failingReader{})
	assert.ErrorIs(t, err, common.ErrFileRead)
}
