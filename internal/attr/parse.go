package attr

import (
	"regexp"
	"strings"

	"github.com/hlop3z/schemagen/internal/alerr"
)

// entryPattern matches one comma-separated entry: ident or ident(payload).
// Identifiers may be ::-qualified so vendor attributes reach validation
// and get reported as unknown rather than malformed.
var entryPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*(?:::[A-Za-z_][A-Za-z0-9_]*)*)\s*(?:\((.*)\))?$`)

// Parse lexes an annotation of the form [[a, b("value"), c(literal)]].
// field is the annotated field's name and is used only in diagnostics.
//
// Commas are always separators; a literal cannot contain one.
func Parse(text, field string) (*Attrs, error) {
	inner, err := unwrapBrackets(text, field)
	if err != nil {
		return nil, err
	}

	attrs := New()
	if strings.TrimSpace(inner) == "" {
		return attrs, nil
	}

	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		m := entryPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, grammarError("malformed attribute entry", text, field).
				With("entry", part).
				WithHelp(`entries are written as name or name("value")`)
		}
		value, err := unquote(m[2], text, field)
		if err != nil {
			return nil, err
		}
		attrs.Set(m[1], value)
	}
	return attrs, nil
}

func unwrapBrackets(text, field string) (string, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") || len(s) < 4 {
		return "", grammarError("annotation must be enclosed in [[ ]]", text, field)
	}
	return s[2 : len(s)-2], nil
}

// unquote strips one pair of surrounding double quotes from a payload.
func unquote(payload, text, field string) (string, error) {
	p := strings.TrimSpace(payload)
	opens := strings.HasPrefix(p, `"`)
	closes := len(p) >= 2 && strings.HasSuffix(p, `"`)
	switch {
	case opens && closes:
		return p[1 : len(p)-1], nil
	case opens || strings.HasSuffix(p, `"`):
		return "", grammarError("unterminated string literal", text, field).
			With("literal", p)
	default:
		return p, nil
	}
}

func grammarError(msg, text, field string) *alerr.Error {
	e := alerr.New(alerr.ErrGrammar, msg).With("annotation", strings.TrimSpace(text))
	if field != "" {
		e.WithField(field)
	}
	return e
}
