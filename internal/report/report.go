// Package report renders a comparison result as the fixed console report.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/amishk599/oppsim/internal/model"
)

var banner = strings.Repeat("=", 50)

// Options tunes rendering without changing the layout.
type Options struct {
	Color bool // colorize labels with ANSI codes
}

// Write prints r in the fixed layout: banner, percentage line, banner,
// analysis, justification, banner. The fallback result renders identically.
func Write(w io.Writer, r model.Result, opts Options) error {
	label := color.New(color.Bold, color.FgCyan)
	pct := color.New(color.Bold, pctColor(r.Similarity))
	if opts.Color {
		label.EnableColor()
		pct.EnableColor()
	} else {
		label.DisableColor()
		pct.DisableColor()
	}

	var b strings.Builder
	b.WriteString("\n" + banner + "\n")
	fmt.Fprintf(&b, "%s %s\n", label.Sprint("PORCENTAJE DE SIMILITUD:"), pct.Sprint(FormatPercentage(r.Similarity)+"%"))
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "\n%s\n%s\n", label.Sprint("ANÁLISIS DETALLADO:"), r.Analysis)
	fmt.Fprintf(&b, "\n%s\n%s\n", label.Sprint("JUSTIFICACIÓN:"), r.Justification)
	b.WriteString(banner + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// FormatPercentage renders the similarity in its shortest form: 100, 85.5.
func FormatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pctColor(v float64) color.Attribute {
	switch {
	case v >= 70:
		return color.FgGreen
	case v >= 40:
		return color.FgYellow
	default:
		return color.FgRed
	}
}
