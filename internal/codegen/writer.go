// Package codegen renders the schema model into the generated artifacts:
// the sqlinq metadata header and one HCL schema per backend.
//
// Emitters are pure: they take the finished model and return text. Output is
// a deterministic function of the input, line for line.
package codegen

import (
	"fmt"
	"strings"
)

// lineWriter accumulates output one line at a time.
type lineWriter struct {
	buf    strings.Builder
	indent int
}

// line writes one indented line. An empty format writes a blank line.
func (w *lineWriter) line(format string, args ...any) *lineWriter {
	if format == "" {
		w.buf.WriteByte('\n')
		return w
	}
	w.buf.WriteString(strings.Repeat("  ", w.indent))
	if len(args) > 0 {
		fmt.Fprintf(&w.buf, format, args...)
	} else {
		w.buf.WriteString(format)
	}
	w.buf.WriteByte('\n')
	return w
}

// open writes a line and indents the lines that follow.
func (w *lineWriter) open(format string, args ...any) *lineWriter {
	w.line(format, args...)
	w.indent++
	return w
}

// close dedents and writes a closing line.
func (w *lineWriter) close(text string) *lineWriter {
	if w.indent > 0 {
		w.indent--
	}
	if text == "" {
		return w.line("")
	}
	return w.line("%s", text)
}

// String returns everything written so far.
func (w *lineWriter) String() string {
	return w.buf.String()
}
