package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	traceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(label+":"), value)
}

func printTrace(w io.Writer, steps errdetect.Trace) {
	for _, line := range steps {
		fmt.Fprintln(w, traceStyle.Render(line))
	}
	fmt.Fprintln(w)
}

func printVerdict(w io.Writer, valid bool) {
	if valid {
		fmt.Fprintln(w, okStyle.Render("OK: no error detected"))
		return
	}
	fmt.Fprintln(w, errorStyle.Render("ERROR: error detected"))
}

// hexFrame renders frame as 64-bit words in hexadecimal followed by the
// number of valid bits; the last word is zero padded.
func hexFrame(frame string) string {
	words, n := bitstr.Pack(frame)
	hex := make([]string, len(words))
	for i, w := range words {
		hex[i] = fmt.Sprintf("%016x", w)
	}
	return fmt.Sprintf("%s (%d bits)", strings.Join(hex, " "), n)
}
