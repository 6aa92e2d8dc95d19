// Package present renders search results, failure functions and verdicts for humans.
//
// It only consumes values produced by the kmp package and never reaches into a Matcher.
package present

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// DefaultContextRadius is the number of bytes shown on each side of a match.
const DefaultContextRadius = 20

// bannerWidth is the width of the '=' and '-' rules.
const bannerWidth = 80

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	match   lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("#268bd2")),
		match:   r.NewStyle().Foreground(lipgloss.Color("#b58900")).Bold(true),
		pass:    r.NewStyle().Foreground(lipgloss.Color("#859900")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("#dc322f")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#cb4b16")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#586e75")),
	}
}

// Printer writes styled reports to a writer. Colors are only emitted when the
// writer is a terminal that supports them.
type Printer struct {
	w      io.Writer
	styles styles
	err    error

	// ContextRadius is the snippet radius used by Results.
	ContextRadius int
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:             w,
		styles:        newStyles(lipgloss.NewRenderer(w)),
		ContextRadius: DefaultContextRadius,
	}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Rule writes a line of '=' characters.
func (p *Printer) Rule() {
	p.printf("%s\n", strings.Repeat("=", bannerWidth))
}

// Heading writes a section title such as "### DEMO 1: SHORT STRING TEST ###".
func (p *Printer) Heading(title string) {
	p.printf("%s\n\n", p.styles.title.Render("### "+title+" ###"))
}

// Banner writes title framed by rules.
func (p *Printer) Banner(title string) {
	p.Rule()
	p.printf("%s\n", p.styles.title.Render(title))
	p.Rule()
	p.printf("\n")
}

// Verdict renders a PASS or FAIL marker.
func (p *Printer) Verdict(pass bool) string {
	if pass {
		return p.styles.pass.Render("PASS")
	}
	return p.styles.fail.Render("FAIL")
}

// Speed renders the benchmark marker: "Fast" when the run was fast, "Check" otherwise.
func (p *Printer) Speed(fast bool) string {
	if fast {
		return p.styles.pass.Render("Fast")
	}
	return p.styles.warning.Render("Check")
}

// Label renders s as a field label.
func (p *Printer) Label(s string) string {
	return p.styles.label.Render(s)
}

// Dim renders s as secondary content.
func (p *Printer) Dim(s string) string {
	return p.styles.dim.Render(s)
}

// Printf writes formatted text through the printer, keeping the first error.
func (p *Printer) Printf(format string, args ...any) {
	p.printf(format, args...)
}

// FailureFunction writes the pattern and its failure function.
func (p *Printer) FailureFunction(pattern string, lps []int) error {
	p.printf("%s %s\n", p.Label("Pattern:"), pattern)
	p.printf("%s %s\n\n", p.Label("LPS Array:"), FormatInts(lps))
	return p.err
}

// Result is one search outcome to present.
type Result struct {
	Text    string
	Pattern string
	Matches []int
	Elapsed time.Duration
}

// Results writes a search outcome: text and pattern sizes, the match positions with a
// context snippet for each, and the elapsed time.
func (p *Printer) Results(r Result) error {
	p.Rule()
	p.printf("%s %d characters\n", p.Label("TEXT LENGTH:"), len(r.Text))
	p.printf("%s %q (length: %d)\n", p.Label("PATTERN:"), r.Pattern, len(r.Pattern))
	p.printf("%s\n", strings.Repeat("-", bannerWidth))

	if len(r.Matches) == 0 {
		p.printf("No matches found.\n")
	} else {
		p.printf("Found %s match(es) at position(s): %s\n",
			p.styles.match.Render(strconv.Itoa(len(r.Matches))), FormatInts(r.Matches))
		p.printf("\nContext snippets:\n")
		for _, pos := range r.Matches {
			snippet := Snippet(r.Text, pos, len(r.Pattern), p.ContextRadius)
			p.printf("  [%d]: ...%s...\n", pos, snippet)
		}
	}

	p.printf("\nExecution time: %s ms\n", FormatMillis(r.Elapsed))
	p.Rule()
	p.printf("\n")
	return p.err
}

// Snippet returns the text around a match at pos of length patternLen, extended by
// radius bytes on each side and clamped to the text. Newlines become spaces and the
// bounds are moved outwards to UTF-8 boundaries so no rune is cut.
func Snippet(text string, pos, patternLen, radius int) string {
	if pos < 0 || pos > len(text) {
		return ""
	}
	if radius < 0 {
		radius = 0
	}

	start := max(0, pos-radius)
	end := min(len(text), pos+patternLen+radius)

	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	snippet := text[start:end]
	snippet = strings.ReplaceAll(snippet, "\r\n", " ")
	return strings.ReplaceAll(snippet, "\n", " ")
}

// FormatInts renders a slice like [0, 4, 8].
func FormatInts(values []int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatMillis renders d in milliseconds with four decimals.
func FormatMillis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 4, 64)
}
