package sqlquery

import "strings"

// Canonicalize renders statement text as a single line of lexemes separated by one space.
//
// Comments are dropped, string literals are kept verbatim and a comma is attached to the
// preceding lexeme. Canonicalizing canonical text does not change it.
func Canonicalize(s string, options ...func(*Options)) string {
	return render(canonicalLexemes(StripComments(s), newPhraseTable(options)))
}

// canonicalLexemes re-lexes comment-free text into significant lexemes with phrases fused.
func canonicalLexemes(s string, phrases phraseTable) []lexeme {
	var (
		sc = scanner{src: s}
		ls []lexeme
	)

	for l, ok := sc.next(); ok; l, ok = sc.next() {
		if l.kind == kindWhitespace || l.kind.isComment() {
			continue
		}

		ls = append(ls, l)
	}

	return phrases.fuse(ls)
}

func render(ls []lexeme) string {
	var b strings.Builder

	for i, l := range ls {
		if i > 0 && !(l.kind == kindPunct && l.text == ",") {
			b.WriteByte(' ')
		}

		b.WriteString(l.text)
	}

	return b.String()
}
