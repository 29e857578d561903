package lib

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type DiagnosticsOptions struct {
	// Color styles the output when out is a terminal.
	Color bool
	// MaxErrors stops recognition after that many errors. Zero means no limit.
	MaxErrors int
}

// Diagnostics is the default Reporter. It prints one line per error and
// keeps every error for later inspection.
type Diagnostics struct {
	out       io.Writer
	maxErrors int
	errs      []*Error
	position  *lipgloss.Style
	message   *lipgloss.Style
}

func NewDiagnostics(out io.Writer, opts DiagnosticsOptions) *Diagnostics {
	if out == nil {
		out = io.Discard
	}
	d := &Diagnostics{
		out:       out,
		maxErrors: opts.MaxErrors,
		errs:      []*Error{},
	}
	if opts.Color {
		renderer := lipgloss.NewRenderer(out)
		position := renderer.NewStyle().Foreground(lipgloss.Color("#6B7280"))
		message := renderer.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
		d.position = &position
		d.message = &message
	}
	return d
}

func (d *Diagnostics) Report(err *Error) bool {
	d.errs = append(d.errs, err)
	fmt.Fprintln(d.out, d.render(err))

	if !err.Code.Recoverable() {
		return false
	}
	return d.maxErrors <= 0 || len(d.errs) < d.maxErrors
}

func (d *Diagnostics) render(err *Error) string {
	pos := fmt.Sprintf("%d-%d:", err.Location.Line, err.Location.Col)
	msg := err.Message()
	if d.position != nil {
		pos = d.position.Render(pos)
		msg = d.message.Render(msg)
	}
	return pos + msg
}

func (d *Diagnostics) Errors() []*Error {
	return d.errs
}

func (d *Diagnostics) Count() int {
	return len(d.errs)
}
