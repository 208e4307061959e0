// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
)

// Reporter prints the per-file progress lines emitted by the mutating
// commands (provision, deprovision, tfadd, tfrm). Lines keep the ✓/⚠ marks
// the CI logs have always carried; color is opt-in.
type Reporter struct {
	w     io.Writer
	ok    lipgloss.Style
	warn  lipgloss.Style
	plain bool
}

// NewReporter returns a Reporter writing to w (os.Stdout when nil).
func NewReporter(w io.Writer, colored bool) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{
		w:     w,
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00a86b")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00")),
		plain: !colored,
	}
}

// Okf prints a ✓ progress line.
func (r *Reporter) Okf(format string, args ...interface{}) {
	r.line(r.ok, "✓", format, args...)
}

// Warnf prints a ⚠ progress line.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	r.line(r.warn, "⚠", format, args...)
}

// Rule prints a separator line, matching the width the scripts always used.
func (r *Reporter) Rule() {
	fmt.Fprintln(r.w, "------------------------------------------------------------")
}

func (r *Reporter) line(style lipgloss.Style, mark, format string, args ...interface{}) {
	msg := mark + " " + fmt.Sprintf(format, args...)
	if r.plain {
		fmt.Fprintln(r.w, msg)
		return
	}
	fmt.Fprintln(r.w, style.Render(msg))
}
