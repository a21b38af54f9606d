package sqlquery

import (
	"regexp"
	"strings"
)

// Statement is a single SQL statement of a submission.
//
// All views are computed once by Split, a Statement is never modified afterwards.
type Statement struct {
	raw             string
	withoutComments string
	canonical       string
	lexemes         []lexeme
	typ             string
	ordered         bool
	semicolon       bool
}

// newStatement builds a statement from the lexemes of a span, false is returned for an empty span.
func newStatement(raw string, ls []lexeme, terminated bool, phrases phraseTable) (Statement, bool) {
	st := Statement{
		raw:             raw,
		withoutComments: stripLexemes(ls),
		semicolon:       terminated,
	}

	if st.withoutComments == "" || st.withoutComments == ";" {
		return Statement{}, false
	}

	st.lexemes = canonicalLexemes(st.withoutComments, phrases)
	if len(st.lexemes) == 0 {
		return Statement{}, false
	}

	st.canonical = render(st.lexemes)
	st.typ = strings.ToUpper(st.lexemes[0].text)
	st.ordered = hasTopLevelOrderBy(st.lexemes)

	return st, true
}

// Raw returns original statement text including comments, without surrounding whitespace.
func (st Statement) Raw() string {
	return strings.TrimFunc(st.raw, isSpace)
}

// WithoutComments returns statement text without comments and surrounding whitespace.
func (st Statement) WithoutComments() string {
	return st.withoutComments
}

// HasEndingSemicolon is true if statement is terminated with semicolon.
func (st Statement) HasEndingSemicolon() bool {
	return st.semicolon
}

// Canonical returns single-line statement text with lexemes separated by one space.
func (st Statement) Canonical() string {
	return st.canonical
}

// Type returns upper-cased leading keyword, e.g. SELECT, INSERT, DELETE.
func (st Statement) Type() string {
	return st.typ
}

// IsSelect is true for SELECT statements.
func (st Statement) IsSelect() bool {
	return st.typ == "SELECT"
}

// IsOrdered is true if statement has ORDER BY outside of parentheses, literals and comments.
func (st Statement) IsOrdered() bool {
	return st.ordered
}

// String returns canonical form.
func (st Statement) String() string {
	return st.canonical
}

// ToSql implements query builder result.
func (st Statement) ToSql() (string, []interface{}, error) { // nolint // Method name matches ext. implementation.
	return st.withoutComments, nil, nil
}

// MatchPattern compiles a case-insensitive regular expression that must match whole text.
//
// The pattern is validated on its own first, so it can not escape the anchoring group.
func MatchPattern(pattern string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}

	return regexp.Compile(`(?i)^(?:` + pattern + `)$`)
}

// MatchRegex finds the first lexeme that fully matches pattern ignoring case.
//
// Quoted literals are matched with their quotes, so `"LIKE"` matches a string literal
// and `LIKE` only matches a keyword. Multi-word phrases, e.g. "not like", are single lexemes.
// Invalid pattern never matches.
func (st Statement) MatchRegex(pattern string) (string, bool) {
	re, err := MatchPattern(pattern)
	if err != nil {
		return "", false
	}

	return st.Match(re)
}

// Match finds the first lexeme that matches re.
//
// Use MatchPattern to build a whole-lexeme case-insensitive expression.
func (st Statement) Match(re *regexp.Regexp) (string, bool) {
	for _, l := range st.lexemes {
		if re.MatchString(l.text) {
			return l.text, true
		}
	}

	return "", false
}

func hasTopLevelOrderBy(ls []lexeme) bool {
	depth := 0

	for i, l := range ls {
		switch {
		case l.kind == kindPunct && l.text == "(":
			depth++
		case l.kind == kindPunct && l.text == ")":
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case l.kind == kindPhrase && strings.EqualFold(l.text, "ORDER BY"):
			return true
		case l.kind == kindWord && strings.EqualFold(l.text, "ORDER") &&
			i+1 < len(ls) && ls[i+1].kind == kindWord && strings.EqualFold(ls[i+1].text, "BY"):
			return true
		}
	}

	return false
}
