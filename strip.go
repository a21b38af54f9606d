package sqlquery

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// StripComments removes line (-- and #) and block (/* */) comments and trims surrounding whitespace.
//
// Comment markers inside string literals and quoted identifiers are kept.
// Spaces and tabs right before a comment are removed with it, the rest of the layout is preserved.
// A single space is kept where removing a comment would glue two tokens together.
func StripComments(s string) string {
	return stripLexemes(scan(s))
}

func stripLexemes(ls []lexeme) string {
	var (
		buf []byte
		gap bool
	)

	for _, l := range ls {
		if l.kind.isComment() {
			buf = bytes.TrimRight(buf, " \t")
			gap = true

			continue
		}

		if gap && len(buf) > 0 && l.kind != kindWhitespace && !endsWithSpace(buf) {
			buf = append(buf, ' ')
		}

		gap = false
		buf = append(buf, l.text...)
	}

	return strings.TrimFunc(string(buf), isSpace)
}

func endsWithSpace(buf []byte) bool {
	r, _ := utf8.DecodeLastRune(buf)

	return isSpace(r)
}
