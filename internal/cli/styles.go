// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#3B82F6")
	// IncomeColor marks money coming in.
	IncomeColor = lipgloss.Color("#22C55E")
	// ExpenseColor marks money going out.
	ExpenseColor = lipgloss.Color("#EF4444")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F59E0B")
	// ModerateColor marks budgets past the halfway point.
	ModerateColor = lipgloss.Color("#EAB308")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#6B7280")
	// BorderColor is used for boxes and table borders.
	BorderColor = lipgloss.Color("#374151")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(IncomeColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(ExpenseColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().Foreground(PrimaryColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// IncomeStyle colors income amounts.
	IncomeStyle = lipgloss.NewStyle().Foreground(IncomeColor)

	// ExpenseStyle colors expense amounts.
	ExpenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor).
				PaddingRight(2)

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	InfoIcon    = "i"
	WalletIcon  = "$"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(WalletIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}

// AmountStyle picks the color for an amount of the given type.
func AmountStyle(kind model.TransactionType) lipgloss.Style {
	if kind == model.TypeIncome {
		return IncomeStyle
	}
	return ExpenseStyle
}

// StatusStyle picks the color for a budget status.
func StatusStyle(status budget.Status) lipgloss.Style {
	switch status {
	case budget.StatusOver:
		return ErrorStyle
	case budget.StatusWarning:
		return WarningStyle
	case budget.StatusModerate:
		return lipgloss.NewStyle().Foreground(ModerateColor)
	default:
		return SuccessStyle
	}
}

// ProgressGauge draws a fixed-width bar filled to percent.
func ProgressGauge(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// RenderTable lays out rows under headers with a rounded border.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	return t.Render()
}
