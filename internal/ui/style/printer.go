package style

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/wbuild/internal/ui/output"
	"go.trai.ch/zerr"
)

// Printer writes styled status lines to a stream.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	subtle  lipgloss.Style
	accent  lipgloss.Style
}

// NewPrinter creates a Printer for w. Colors are dropped when w is not a terminal.
func NewPrinter(w io.Writer) *Printer {
	profile := output.ColorProfile(w)
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(Green).Bold(true),
		failure: r.NewStyle().Foreground(Red).Bold(true),
		notice:  r.NewStyle().Foreground(Yellow),
		subtle:  r.NewStyle().Foreground(Slate),
		accent:  r.NewStyle().Foreground(Iris),
	}
}

// Success prints msg with a check mark. Details are rendered dimmed.
func (p *Printer) Success(msg string, details ...string) {
	line := p.success.Render(Check) + " " + msg
	if len(details) > 0 {
		line += " " + p.subtle.Render(strings.Join(details, " "))
	}
	_, _ = fmt.Fprintln(p.w, line)
}

// Notice prints msg with a tilde.
func (p *Printer) Notice(msg string) {
	_, _ = fmt.Fprintln(p.w, p.notice.Render(Tilde)+" "+msg)
}

// Item prints a bulleted name and value.
func (p *Printer) Item(name, value string) {
	_, _ = fmt.Fprintln(p.w, p.accent.Render(Dot)+" "+name+" "+p.subtle.Render(value))
}

// Error prints one line per error. Joined errors are split.
func (p *Printer) Error(err error) {
	for _, e := range Split(err) {
		line := p.failure.Render(Cross) + " " + e.Error()
		if meta := FormatMetadata(e); meta != "" {
			line += " " + p.subtle.Render(meta)
		}
		_, _ = fmt.Fprintln(p.w, line)
	}
}

// Split flattens errors.Join trees into their leaves.
func Split(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, Split(e)...)
		}
		return out
	}
	return []error{err}
}

// FormatMetadata renders the zerr metadata of the whole chain as sorted
// key=value pairs. Outer values win over inner ones.
func FormatMetadata(err error) string {
	meta := make(map[string]any)
	for e := err; e != nil; e = errors.Unwrap(e) {
		z, ok := e.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range z.Metadata() {
			if _, seen := meta[k]; !seen {
				meta[k] = v
			}
		}
	}
	if len(meta) == 0 {
		return ""
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return strings.Join(pairs, " ")
}
