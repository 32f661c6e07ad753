package cli

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressBar reports import progress on a terminal bar.
type ProgressBar struct {
	w           io.Writer
	bar         *progressbar.ProgressBar
	description string
}

// NewProgressBar creates a reporter drawing to w. The bar itself is created on Start.
func NewProgressBar(w io.Writer, description string) *ProgressBar {
	return &ProgressBar{w: w, description: description}
}

// Start implements service.ProgressReporter.
func (p *ProgressBar) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+p.description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.w)
		}),
	)
}

// Advance implements service.ProgressReporter.
func (p *ProgressBar) Advance(processed int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Set(processed)
}

// Finish implements service.ProgressReporter.
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
