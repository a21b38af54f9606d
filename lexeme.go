package sqlquery

// lexemeKind classifies a run of characters produced by the scanner.
type lexemeKind int

const (
	kindWhitespace lexemeKind = iota
	kindWord
	kindNumber
	kindString
	kindQuotedIdent
	kindBracketIdent
	kindPunct
	kindTerminator
	kindLineComment
	kindBlockComment
	kindPhrase
)

func (k lexemeKind) String() string {
	switch k {
	case kindWhitespace:
		return "whitespace"
	case kindWord:
		return "word"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindQuotedIdent:
		return "quoted identifier"
	case kindBracketIdent:
		return "bracket identifier"
	case kindPunct:
		return "punctuation"
	case kindTerminator:
		return "terminator"
	case kindLineComment:
		return "line comment"
	case kindBlockComment:
		return "block comment"
	case kindPhrase:
		return "phrase"
	default:
		return "unknown"
	}
}

// isComment reports whether lexemes of this kind are removed by comment stripping.
func (k lexemeKind) isComment() bool {
	return k == kindLineComment || k == kindBlockComment
}

type lexeme struct {
	kind lexemeKind
	text string
}
