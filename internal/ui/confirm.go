package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/diskmgr/internal/prompt"
	"github.com/muurk/diskmgr/internal/terminal"
)

// AgreePhrase must be typed to confirm a destructive operation.
const AgreePhrase = "I AGREE"

// renderWarningBox draws the title, bullets and optional disclaimer shared by
// both confirmations.
func renderWarningBox(width int, title string, warnings []string, disclaimer string) string {
	width = ClampWidth(width)

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title)),
		"",
	}

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	if disclaimer != "" {
		disclaimerStyle := lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Width(width - 12).
			PaddingLeft(3)
		lines = append(lines, disclaimerStyle.Render(disclaimer), "")
	}

	return resultBoxStyle(width, WarningColor).Render(strings.Join(lines, "\n"))
}

// Confirm shows a warning box and asks a y/n question answered with a single
// key. It returns the answer, or an error if the terminal fails.
func Confirm(t terminal.Terminal, title string, warnings []string, question string) (bool, error) {
	p := NewPrinter(t, t.Width())
	p.Println(renderWarningBox(p.Width(), title, warnings, ""))
	p.Newline()

	q, err := prompt.New(t, prompt.Config{
		Cue:        question + " (y/n)",
		Keystroke:  true,
		Validation: prompt.Bool{},
	})
	if err != nil {
		return false, err
	}
	answer, err := q.Call()
	if err != nil {
		return false, err
	}
	if !answer.Yes {
		p.Println(CancelStyle.Render("  Operation cancelled."))
	}
	return answer.Yes, nil
}

// ConfirmDangerousOperation displays a warning box and asks the user to type
// AgreePhrase to proceed. Anything else cancels.
func ConfirmDangerousOperation(t terminal.Terminal, title string, warnings []string, disclaimer string) (bool, error) {
	p := NewPrinter(t, t.Width())
	p.Println(renderWarningBox(p.Width(), title, warnings, disclaimer))
	p.Newline()

	q, err := prompt.New(t, prompt.Config{
		Cue: fmt.Sprintf("To proceed, type %q and press Enter:", AgreePhrase),
	})
	if err != nil {
		return false, err
	}
	answer, err := q.Call()
	if err != nil {
		return false, err
	}

	if strings.TrimSpace(answer.Text) == AgreePhrase {
		p.Newline()
		return true, nil
	}

	p.Newline()
	p.Println(CancelStyle.Render("  Operation cancelled."))
	p.Newline()
	return false, nil
}

// DestructiveScanConfirmation is the confirmation shown before a write-mode
// badblocks scan.
func DestructiveScanConfirmation(t terminal.Terminal, device string) (bool, error) {
	return ConfirmDangerousOperation(t,
		"DESTRUCTIVE SURFACE SCAN",
		[]string{
			"Every block of " + device + " will be overwritten with test patterns",
			"All partitions and data on the device will be lost",
			"Do not interrupt the scan once started",
		},
		"DISCLAIMER: This software is provided as-is, without warranty of any kind. "+
			"The authors accept no responsibility for lost data. "+
			"By proceeding, you acknowledge that the device will be erased.",
	)
}
