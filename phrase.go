package sqlquery

import (
	"sort"
	"strings"
)

var defaultPhrases = []string{
	"ORDER BY",
	"GROUP BY",
	"PARTITION BY",
	"NOT LIKE",
	"NOT ILIKE",
	"NOT REGEXP",
	"NULLS FIRST",
	"NULLS LAST",
	"UNION ALL",
	"LEFT JOIN",
	"LEFT OUTER JOIN",
	"RIGHT JOIN",
	"RIGHT OUTER JOIN",
	"FULL JOIN",
	"FULL OUTER JOIN",
	"INNER JOIN",
	"CROSS JOIN",
	"NATURAL JOIN",
}

// DefaultPhrases returns a fresh copy of multi-word keyword sequences that are treated as a single lexeme.
//
// A phrase lexeme keeps the original casing of its words joined with a single space.
// Words of a phrase are not matched on their own, e.g. "join" does not match "INNER JOIN".
func DefaultPhrases() []string {
	return append([]string(nil), defaultPhrases...)
}

// Options defines lexical analysis parameters.
type Options struct {
	// Phrases lists multi-word keyword sequences matched as a single lexeme, default DefaultPhrases().
	// An empty non-nil list disables phrases.
	Phrases []string
}

// Phrases replaces the list of multi-word keyword sequences.
func Phrases(phrases ...string) func(o *Options) {
	phrases = append([]string{}, phrases...)

	return func(o *Options) {
		o.Phrases = phrases
	}
}

// phraseTable maps an upper-cased first word to candidate phrases, longest first.
type phraseTable map[string][][]string

func newPhraseTable(options []func(*Options)) phraseTable {
	var o Options

	for _, option := range options {
		option(&o)
	}

	if o.Phrases == nil {
		o.Phrases = defaultPhrases
	}

	t := make(phraseTable, len(o.Phrases))

	for _, p := range o.Phrases {
		words := strings.Fields(strings.ToUpper(p))
		if len(words) < 2 {
			continue
		}

		t[words[0]] = append(t[words[0]], words)
	}

	for _, candidates := range t {
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i]) > len(candidates[j])
		})
	}

	return t
}

// match returns the number of leading word lexemes forming a known phrase, or 0.
func (t phraseTable) match(ls []lexeme) int {
	if ls[0].kind != kindWord {
		return 0
	}

	for _, words := range t[strings.ToUpper(ls[0].text)] {
		if len(words) > len(ls) {
			continue
		}

		found := true

		for i, w := range words[1:] {
			l := ls[i+1]
			if l.kind != kindWord || !strings.EqualFold(l.text, w) {
				found = false

				break
			}
		}

		if found {
			return len(words)
		}
	}

	return 0
}

// fuse replaces phrase word sequences with phrase lexemes.
// The input must not contain whitespace or comment lexemes.
func (t phraseTable) fuse(ls []lexeme) []lexeme {
	res := make([]lexeme, 0, len(ls))

	for i := 0; i < len(ls); {
		n := t.match(ls[i:])
		if n == 0 {
			res = append(res, ls[i])
			i++

			continue
		}

		words := make([]string, n)
		for j := range words {
			words[j] = ls[i+j].text
		}

		res = append(res, lexeme{kind: kindPhrase, text: strings.Join(words, " ")})
		i += n
	}

	return res
}
