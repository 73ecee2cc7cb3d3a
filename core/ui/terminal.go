// Package ui - Terminal user interface
// CLI output with colors, boxed summaries and tables.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:     out,
		noColor: noColor,
	}
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes text as is
func (w *Writer) Print(text string) {
	fmt.Fprint(w.out, text)
}

// Println writes a line
func (w *Writer) Println(text string) {
	fmt.Fprintln(w.out, text)
}

// Printf writes formatted text
func (w *Writer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println(w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println(w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println(w.Color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println(w.Color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	w.Println(w.Color(Blue, "ℹ ") + fmt.Sprintf(format, args...))
}

// KeyValue prints an aligned "key: value" line
func (w *Writer) KeyValue(key, value string) {
	w.Printf("  %-18s %s\n", key+":", value)
}

// Box prints lines inside a rounded box sized to the widest line
func (w *Writer) Box(color string, lines ...string) {
	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	w.Println(w.Color(Bold, "╭"+strings.Repeat("─", width+4)+"╮"))
	for _, l := range lines {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(l))
		w.Println(w.Color(Bold, "│") + "  " + w.Color(color, l) + pad + "  " + w.Color(Bold, "│"))
	}
	w.Println(w.Color(Bold, "╰"+strings.Repeat("─", width+4)+"╯"))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	marked  []bool
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.addRow(false, cells)
}

// AddMarkedRow adds a highlighted row
func (t *Table) AddMarkedRow(cells ...string) {
	t.addRow(true, cells)
}

func (t *Table) addRow(marked bool, cells []string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
	t.marked = append(t.marked, marked)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println(t.w.Color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println(strings.Join(sep, "─┼─"))

	for i, row := range t.rows {
		if t.marked[i] {
			t.w.Println(t.w.Color(Green+Bold, t.line(row)))
		} else {
			t.w.Println(t.line(row))
		}
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c + strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(c))
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}
