package status

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
)

// FileFormatter defines how file results and summaries are rendered
type FileFormatter interface {
	// FormatFileResult formats the outcome of one file as a console line
	FormatFileResult(res FileResult) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the batch totals block
	FormatSummary(sum Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileResult renders one aligned line per file, symbol first
func (f *DefaultFileFormatter) FormatFileResult(res FileResult) string {
	var symbol rune
	var symbolColor color.Attribute
	switch res.Status {
	case StatusScaled:
		symbol = '✓'
		symbolColor = color.FgGreen
	case StatusNoPower:
		symbol = '-'
		symbolColor = color.FgYellow
	case StatusSkipped:
		symbol = '✗'
		symbolColor = color.FgRed
	case StatusRestored:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case StatusPending:
		symbol = '·'
		symbolColor = color.FgCyan
	default:
		symbol = '?'
		symbolColor = color.FgMagenta
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(res.Path)),
		fmt.Sprintf("%-*s", statusWidth, res.Status.String()),
		f.formatDetail(res))
}

// formatDetail picks the trailing column for a result line
func (f *DefaultFileFormatter) formatDetail(res FileResult) string {
	switch res.Status {
	case StatusScaled:
		detail := fmt.Sprintf("%d points, avg %.1fW", res.Points, res.Average())
		if res.Invalid > 0 {
			detail += fmt.Sprintf(" (%d invalid)", res.Invalid)
		}
		return detail
	case StatusNoPower:
		if res.Invalid > 0 {
			return fmt.Sprintf("0 scaled (%d invalid)", res.Invalid)
		}
		return "0 points"
	case StatusSkipped:
		if res.Err != nil {
			return color.New(color.FgRed).Sprint(res.Err.Error())
		}
		return ""
	case StatusRestored:
		if res.BackupPath != "" {
			return fmt.Sprintf("from %s", filepath.Base(res.BackupPath))
		}
		return ""
	case StatusPending:
		detail := fmt.Sprintf("%d points", res.Points)
		if res.Invalid > 0 {
			detail += fmt.Sprintf(" (%d invalid)", res.Invalid)
		}
		if res.BackupPath != "" {
			detail += ", backup exists"
			if res.Drifted {
				detail += " (modified since backup)"
			}
		}
		return detail
	default:
		return ""
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary renders the batch totals block
func (f *DefaultFileFormatter) FormatSummary(sum Summary) string {
	header := color.New(color.Bold).Sprintf("%d file(s) in %s", sum.Files, sum.Folder)
	body := fmt.Sprintf("%d scaled, %d without power, %d skipped",
		sum.Scaled, sum.NoPower, sum.Skipped)
	if sum.Restored > 0 {
		body = fmt.Sprintf("%d restored, %s", sum.Restored, body)
	}
	if sum.Pending > 0 {
		body = fmt.Sprintf("%d pending, %s", sum.Pending, body)
	}
	totals := fmt.Sprintf("%d points scaled by %v, avg %.1fW, in %s",
		sum.Points, sum.Factor, sum.Average(), sum.Elapsed.Round(time.Millisecond))
	if sum.Invalid > 0 {
		totals += fmt.Sprintf(" (%d invalid samples left untouched)", sum.Invalid)
	}
	return header + "\n" + body + "\n" + totals
}
