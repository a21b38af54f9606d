package sqlquery

import "strings"

// Split splits SQL text in statements separated by semicolon (';').
//
// Semicolons in comments, string literals and quoted identifiers are not treated as separators.
// Statements that are empty or consist only of comments are skipped.
func Split(s string, options ...func(*Options)) []Statement {
	var (
		sc        = scanner{src: s}
		phrases   = newPhraseTable(options)
		res       []Statement
		span      []lexeme
		spanStart int
	)

	for l, ok := sc.next(); ok; l, ok = sc.next() {
		span = append(span, l)

		if l.kind != kindTerminator {
			continue
		}

		if st, ok := newStatement(s[spanStart:sc.pos], span, true, phrases); ok {
			res = append(res, st)
		}

		span = span[:0]
		spanStart = sc.pos
	}

	if st, ok := newStatement(s[spanStart:], span, false, phrases); ok {
		res = append(res, st)
	}

	return res
}

// SplitStatements splits a string in multiple SQL statements separated by semicolon (';').
//
// Semicolons in comments and string literals are not treated as separators.
// Statements keep their comments, but not the terminating semicolon.
func SplitStatements(s string) []string {
	var (
		sc        = scanner{src: s}
		res       []string
		spanStart int
		empty     = true
	)

	flush := func(end int) {
		if !empty {
			res = append(res, strings.TrimFunc(s[spanStart:end], isSpace))
		}

		empty = true
	}

	for l, ok := sc.next(); ok; l, ok = sc.next() {
		switch l.kind {
		case kindTerminator:
			flush(sc.pos - 1)
			spanStart = sc.pos
		case kindWhitespace, kindLineComment, kindBlockComment:
		default:
			empty = false
		}
	}

	flush(len(s))

	return res
}
