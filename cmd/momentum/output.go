package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexisbeaulieu97/momentum/internal/theme"
)

// printer writes command output styled with the active theme.
type printer struct {
	out    io.Writer
	styles theme.TerminalStyles
}

func newPrinter(w io.Writer, p theme.Palette) printer {
	return printer{out: w, styles: theme.Styles(p)}
}

func (p printer) Title(text string) {
	_, _ = fmt.Fprintln(p.out, p.styles.Title.Render(text))
}

func (p printer) Success(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, p.styles.Applied.Render("✓ ")+fmt.Sprintf(format, args...))
}

func (p printer) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p printer) Hint(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, p.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

func (p printer) Coins(n int) string {
	return p.styles.Coins.Render(fmt.Sprintf("%d coins", n))
}

// Notices prints inline fetch failures; the command still succeeds.
func (p printer) Notices(notices []string) {
	for _, n := range notices {
		_, _ = fmt.Fprintln(p.out, p.styles.Error.Render("! "+n))
	}
}

// Table renders rows under header, aligned with tabs.
func (p printer) Table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
