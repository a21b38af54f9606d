package sqlquery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// mode is the lexical context of the scanner at the current position.
type mode int

const (
	modeNormal mode = iota
	modeLineComment
	modeBlockComment
	modeSingleQuote
	modeDoubleQuote
	modeBacktick
	modeBracket

	modeCount
)

func (m mode) String() string {
	switch m {
	case modeNormal:
		return "Normal"
	case modeLineComment:
		return "InLineComment"
	case modeBlockComment:
		return "InBlockComment"
	case modeSingleQuote:
		return "InSingleQuoteString"
	case modeDoubleQuote:
		return "InDoubleQuoteString"
	case modeBacktick:
		return "InBacktickIdentifier"
	case modeBracket:
		return "InBracketIdentifier"
	default:
		return "Unknown"
	}
}

// transition consumes input in the current mode.
//
// It returns the kind of the finished lexeme and true once a lexeme is complete and the
// scanner is back in modeNormal. It returns false when it only switched to another mode.
// Every non-normal transition must complete its lexeme at end of input.
type transition func(s *scanner) (lexemeKind, bool)

var transitions = [modeCount]transition{
	modeNormal:       (*scanner).scanNormal,
	modeLineComment:  (*scanner).scanLineComment,
	modeBlockComment: (*scanner).scanBlockComment,
	modeSingleQuote:  (*scanner).scanSingleQuote,
	modeDoubleQuote:  (*scanner).scanDoubleQuote,
	modeBacktick:     (*scanner).scanBacktick,
	modeBracket:      (*scanner).scanBracket,
}

func init() {
	for m, t := range transitions {
		if t == nil {
			panic("sqlquery: missing scanner transition for mode " + mode(m).String())
		}
	}
}

// scanner splits SQL text into lexemes in a single left-to-right pass.
type scanner struct {
	src  string
	pos  int
	mode mode
}

// next returns the next lexeme, or false at end of input.
func (s *scanner) next() (lexeme, bool) {
	start := s.pos

	for s.pos < len(s.src) || s.mode != modeNormal {
		if kind, done := transitions[s.mode](s); done {
			return lexeme{kind: kind, text: s.src[start:s.pos]}, true
		}
	}

	return lexeme{}, false
}

// scan returns all lexemes of s, whitespace and comments included.
func scan(s string) []lexeme {
	var (
		sc  = scanner{src: s}
		res []lexeme
	)

	for l, ok := sc.next(); ok; l, ok = sc.next() {
		res = append(res, l)
	}

	return res
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}

	return 0
}

func (s *scanner) enter(m mode, opener int) (lexemeKind, bool) {
	s.mode = m
	s.pos += opener

	return 0, false
}

func (s *scanner) leave(kind lexemeKind) (lexemeKind, bool) {
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}

	s.mode = modeNormal

	return kind, true
}

func (s *scanner) scanNormal() (lexemeKind, bool) {
	c := s.src[s.pos]

	switch {
	case c == '-' && s.peek(1) == '-':
		return s.enter(modeLineComment, 2)
	case c == '#':
		return s.enter(modeLineComment, 1)
	case c == '/' && s.peek(1) == '*':
		return s.enter(modeBlockComment, 2)
	case c == '\'':
		return s.enter(modeSingleQuote, 1)
	case c == '"':
		return s.enter(modeDoubleQuote, 1)
	case c == '`':
		return s.enter(modeBacktick, 1)
	case c == '[':
		return s.enter(modeBracket, 1)
	case c == ';':
		s.pos++

		return kindTerminator, true
	case isDigit(c), c == '.' && isDigit(s.peek(1)):
		s.scanNumber()

		return kindNumber, true
	case c == '-' && (isDigit(s.peek(1)) || s.peek(1) == '.' && isDigit(s.peek(2))):
		s.pos++
		s.scanNumber()

		return kindNumber, true
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])

	switch {
	case isSpace(r):
		s.pos += size
		s.skipSpace()

		return kindWhitespace, true
	case isWordStart(r):
		s.pos += size
		s.scanWord()

		return kindWord, true
	default:
		s.scanOperator(size)

		return kindPunct, true
	}
}

func (s *scanner) scanLineComment() (lexemeKind, bool) {
	if i := strings.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i
	} else {
		s.pos = len(s.src)
	}

	return s.leave(kindLineComment)
}

func (s *scanner) scanBlockComment() (lexemeKind, bool) {
	if i := strings.Index(s.src[s.pos:], "*/"); i >= 0 {
		s.pos += i + 2
	} else {
		s.pos = len(s.src)
	}

	return s.leave(kindBlockComment)
}

func (s *scanner) scanSingleQuote() (lexemeKind, bool) {
	s.skipQuoted('\'', true)

	return s.leave(kindString)
}

func (s *scanner) scanDoubleQuote() (lexemeKind, bool) {
	s.skipQuoted('"', true)

	return s.leave(kindString)
}

func (s *scanner) scanBacktick() (lexemeKind, bool) {
	s.skipQuoted('`', false)

	return s.leave(kindQuotedIdent)
}

func (s *scanner) scanBracket() (lexemeKind, bool) {
	if i := strings.IndexByte(s.src[s.pos:], ']'); i >= 0 {
		s.pos += i + 1
	} else {
		s.pos = len(s.src)
	}

	return s.leave(kindBracketIdent)
}

// skipQuoted advances past the closing quote q.
// A doubled quote is an escaped quote, as is a backslash-escaped one when backslash is set.
func (s *scanner) skipQuoted(q byte, backslash bool) {
	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch {
		case backslash && c == '\\':
			s.pos += 2
		case c == q && s.peek(1) == q:
			s.pos += 2
		case c == q:
			s.pos++

			return
		default:
			s.pos++
		}
	}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isSpace(r) {
			return
		}

		s.pos += size
	}
}

func (s *scanner) skipDigits() {
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) scanNumber() {
	s.skipDigits()

	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		s.pos++
		s.skipDigits()
	}

	if e := s.peek(0); e == 'e' || e == 'E' {
		n := 1
		if sign := s.peek(1); sign == '+' || sign == '-' {
			n = 2
		}

		if isDigit(s.peek(n)) {
			s.pos += n
			s.skipDigits()
		}
	}
}

// scanWord consumes the rest of an identifier or keyword, dotted parts included.
func (s *scanner) scanWord() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])

		switch {
		case isWordPart(r):
			s.pos += size
		case r == '.' && s.peek(1) == '*':
			s.pos += 2

			return
		case r == '.':
			if next, _ := utf8.DecodeRuneInString(s.src[s.pos+1:]); !isWordPart(next) {
				return
			}

			s.pos++
		default:
			return
		}
	}
}

const comparisonChars = "<>=!~"

func (s *scanner) scanOperator(size int) {
	c := s.src[s.pos]

	switch {
	case strings.IndexByte(comparisonChars, c) >= 0:
		for s.pos < len(s.src) && strings.IndexByte(comparisonChars, s.src[s.pos]) >= 0 {
			s.pos++
		}
	case (c == '|' || c == ':') && s.peek(1) == c:
		s.pos += 2
	default:
		s.pos += size
	}
}

// isSpace reports white space, a byte order mark counts as one.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '@' || r == '$'
}

func isWordPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}
