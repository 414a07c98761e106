package cpp

import (
	"bytes"
	"regexp"
)

var (
	guardOpen  = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*ifndef[ \t]+(\w+)[ \t]*\r?\n[ \t]*#[ \t]*define[ \t]+(\w+)[^\n]*(?:\n|$)`)
	guardClose = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*endif\b[^\n]*`)
)

// StripIncludeGuard removes a classic #ifndef X / #define X include guard and
// its closing #endif, so guarded declarations parse as top-level nodes.
//
// Only the first #ifndef/#define pair naming the same macro is treated as a
// guard, and only a final #endif followed by nothing but whitespace closes it.
// Source without such a guard is returned unchanged. Line numbers of the
// remaining code are preserved.
func StripIncludeGuard(src []byte) []byte {
	open := guardOpen.FindSubmatchIndex(src)
	if open == nil {
		return src
	}
	if !bytes.Equal(src[open[2]:open[3]], src[open[4]:open[5]]) {
		return src
	}

	closes := guardClose.FindAllIndex(src[open[1]:], -1)
	if len(closes) == 0 {
		return src
	}
	last := closes[len(closes)-1]
	closeStart, closeEnd := open[1]+last[0], open[1]+last[1]
	for _, b := range src[closeEnd:] {
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			return src
		}
	}

	out := make([]byte, 0, len(src))
	out = append(out, src[:open[0]]...)
	out = append(out, blankLines(src[open[0]:open[1]])...)
	out = append(out, src[open[1]:closeStart]...)
	out = append(out, src[closeEnd:]...)
	return out
}

// blankLines keeps only the newlines of b.
func blankLines(b []byte) []byte {
	var out []byte
	for _, c := range b {
		if c == '\n' {
			out = append(out, c)
		}
	}
	return out
}
