// Package output renders command results as styled tables, markdown, or
// JSON depending on where stdout points.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/dbtsync/pkg/client"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in a single resolved mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer. ModeAuto (or an empty mode) resolves to
// text on an interactive terminal and markdown when piped.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = detectMode(out)
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

func detectMode(w io.Writer) Mode {
	if f, ok := w.(*os.File); ok {
		if termenv.NewOutput(f).ColorProfile() != termenv.Ascii {
			return ModeText
		}
	}
	return ModeMarkdown
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Line writes a plain line to stdout.
func (r *Renderer) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// Table renders column names and rows in the resolved mode.
func (r *Renderer) Table(cols []string, rows [][]any) error {
	switch r.mode {
	case ModeJSON:
		return r.JSON(map[string]any{"columns": cols, "rows": rows})
	case ModeMarkdown:
		return r.renderMarkdown(cols, rows)
	default:
		return r.renderTable(cols, rows)
	}
}

func (r *Renderer) renderTable(cols []string, rows [][]any) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, values := range rows {
		row := make(table.Row, len(cols))
		for i := range cols {
			row[i] = formatValue(valueAt(values, i))
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d rows)\n", len(rows))
	return nil
}

func (r *Renderer) renderMarkdown(cols []string, rows [][]any) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(cols, " | "))
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(sep, " | "))

	for _, values := range rows {
		cells := make([]string, len(cols))
		for i := range cols {
			cells[i] = formatValue(valueAt(values, i))
		}
		_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(cells, " | "))
	}
	return nil
}

// JSON writes v indented to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Failure renders an error payload returned by the sync server client.
// JSON mode emits the envelope verbatim; other modes write readable lines
// to stderr.
func (r *Renderer) Failure(e *client.ErrorContainer) {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.errOut)
		enc.SetIndent("", "  ")
		_ = enc.Encode(e)
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "error [%s]: %s\n", e.Error.Code, e.Error.Message)
	for key, val := range e.Error.Data {
		if val == "" {
			continue
		}
		_, _ = fmt.Fprintf(r.errOut, "  %s: %s\n", key, val)
	}
}

// valueAt guards against rows shorter than the column list; the server's
// row shapes are not validated anywhere upstream.
func valueAt(values []any, i int) any {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		// JSON numbers decode as float64; print integers without the
		// trailing .0
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
