package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
)

// detailOrder fixes the display order of well-known context keys.
// Any other key follows in sorted order.
var detailOrder = []string{"struct", "field", "attribute", "type", "dialect", "column", "table"}

// shownElsewhere lists context keys rendered outside the detail block.
var shownElsewhere = map[string]bool{
	"file": true, "line": true,
	"source": true, "span_start": true, "span_end": true,
	"notes": true, "helps": true, "label": true,
}

// FormatError formats an error for CLI display in Cargo/rustc style.
// The first *alerr.Error in the chain supplies structured information.
// Any other error is formatted as a generic one-liner.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if ae := alerr.As(err); ae != nil {
		return formatCodedError(ae)
	}
	return formatGenericError(err)
}

// formatCodedError formats an *alerr.Error in Cargo style.
func formatCodedError(err *alerr.Error) string {
	var b strings.Builder
	ctx := err.GetContext()

	// First line: error[E1001]: message
	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(err.GetCode())))
	b.WriteString("]: ")
	b.WriteString(err.GetMessage())
	b.WriteString("\n")

	file, line, hasFile := err.Location()
	if hasFile {
		loc := file
		if line > 0 {
			loc = file + ":" + strconv.Itoa(line)
		}
		b.WriteString("  ")
		b.WriteString(Arrow())
		b.WriteString(" ")
		b.WriteString(FilePath(loc))
		b.WriteString("\n")
	}

	gutter := "   "
	source, hasSource := ctx["source"].(string)
	if hasSource && line > 0 {
		b.WriteString(formatSourceContext(line, source, ctx))
		gutter = strings.Repeat(" ", len(strconv.Itoa(line))+1)
	}

	if details := orderedDetails(ctx); len(details) > 0 {
		b.WriteString(gutter)
		b.WriteString(Pipe())
		b.WriteString("\n")
		for _, detail := range details {
			b.WriteString(gutter)
			b.WriteString(Pipe())
			b.WriteString(" ")
			b.WriteString(detail)
			b.WriteString("\n")
		}
	}

	for _, note := range err.Notes() {
		b.WriteString(gutter)
		b.WriteString(Pipe())
		b.WriteString("\n")
		b.WriteString(Note("note"))
		b.WriteString(": ")
		b.WriteString(note)
		b.WriteString("\n")
	}

	for _, help := range err.Helps() {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	if cause := err.GetCause(); cause != nil {
		b.WriteString(gutter)
		b.WriteString(Pipe())
		b.WriteString("\n")
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(cause.Error())
		b.WriteString("\n")
	}

	return b.String()
}

// orderedDetails renders context entries not shown elsewhere, well-known
// keys first.
func orderedDetails(ctx map[string]any) []string {
	seen := make(map[string]bool, len(ctx))
	var details []string
	for _, k := range detailOrder {
		if v, ok := ctx[k]; ok {
			details = append(details, fmt.Sprintf("%s: %v", k, v))
			seen[k] = true
		}
	}

	var rest []string
	for k := range ctx {
		if !seen[k] && !shownElsewhere[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		details = append(details, fmt.Sprintf("%s: %v", k, ctx[k]))
	}
	return details
}

// formatSourceContext renders a source line with its number and a pointer
// under the span, when one is set.
func formatSourceContext(line int, source string, ctx map[string]any) string {
	var b strings.Builder

	lineStr := strconv.Itoa(line)
	padding := strings.Repeat(" ", len(lineStr))

	b.WriteString(padding)
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString("\n")

	// Source line: "12 |     int id [[primary]];"
	b.WriteString(LineNum(lineStr))
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString(" ")
	b.WriteString(source)
	b.WriteString("\n")

	start, _ := ctx["span_start"].(int)
	end, _ := ctx["span_end"].(int)
	if start <= 0 {
		return b.String()
	}
	if end < start {
		end = start
	}
	label, _ := ctx["label"].(string)

	// Pointer line: "   |        ^^^^^^^ label"
	b.WriteString(padding)
	b.WriteString(" ")
	b.WriteString(Pipe())
	b.WriteString(" ")
	b.WriteString(strings.Repeat(" ", start-1))
	b.WriteString(Pointer(strings.Repeat("^", end-start+1)))
	if label != "" {
		b.WriteString(" ")
		b.WriteString(label)
	}
	b.WriteString("\n")

	return b.String()
}

// formatGenericError formats a non-alerr error.
func formatGenericError(err error) string {
	return Error("error") + ": " + err.Error() + "\n"
}

// FormatWarning formats a warning message in Cargo style.
// A non-empty file adds a location line.
func FormatWarning(msg, file string, line int) string {
	var b strings.Builder
	b.WriteString(Warning("warning"))
	b.WriteString(": ")
	b.WriteString(msg)
	b.WriteString("\n")
	if file != "" {
		loc := file
		if line > 0 {
			loc = file + ":" + strconv.Itoa(line)
		}
		b.WriteString("  ")
		b.WriteString(Arrow())
		b.WriteString(" ")
		b.WriteString(FilePath(loc))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatNote formats a note message.
func FormatNote(msg string) string {
	return Note("note") + ": " + msg + "\n"
}

// FormatSuccess formats a success message.
func FormatSuccess(msg string) string {
	return Success("success") + ": " + msg + "\n"
}
