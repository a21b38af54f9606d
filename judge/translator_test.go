package judge_test

import (
	"testing"

	"github.com/bool64/sqlquery/judge"
	"github.com/stretchr/testify/assert"
)

func TestLanguageFromString(t *testing.T) {
	assert.Equal(t, judge.NL, judge.LanguageFromString("nl"))
	assert.Equal(t, judge.NL, judge.LanguageFromString(" NL "))
	assert.Equal(t, judge.EN, judge.LanguageFromString("en"))
	assert.Equal(t, judge.EN, judge.LanguageFromString("fr"))
	assert.Equal(t, judge.EN, judge.LanguageFromString(""))
}

func TestTranslator_Translate(t *testing.T) {
	en := judge.Translator{Language: judge.EN}
	nl := judge.Translator{Language: judge.NL}

	assert.Equal(t, "Expected row count 3, your row count was 5.",
		en.Translate(judge.DifferentRowCount, "expected", 3, "submitted", 5))
	assert.Equal(t, "Verwachtte 2 kolommen, uw aantal kolommen is 1.",
		nl.Translate(judge.DifferentColumnCount, "submitted", 1, "expected", 2))
	assert.Equal(t, "Add a semicolon ';' at the end of each SQL query.", en.Translate(judge.AddASemicolon))
	assert.Equal(t, "Query {n}", en.Translate(judge.QueryTab), "missing values keep placeholders")
	assert.Equal(t, "Query 7", nl.Translate(judge.QueryTab, "n", 7, "unused"))
}

func TestTranslator_ErrorStatus(t *testing.T) {
	en := judge.Translator{Language: judge.EN}
	nl := judge.Translator{Language: judge.NL}

	assert.Equal(t, judge.Status{Enum: judge.CompilationError, Human: "The query is not valid"},
		en.ErrorStatus(judge.CompilationError))
	assert.Equal(t, "Tijdslimiet overschreden", nl.HumanError(judge.TimeLimitExceeded))
	assert.Equal(t, "unknown", en.HumanError("unknown"))
}

func TestWorse(t *testing.T) {
	assert.Equal(t, judge.Wrong, judge.Worse(judge.Correct, judge.Wrong))
	assert.Equal(t, judge.Wrong, judge.Worse(judge.Wrong, judge.Correct))
	assert.Equal(t, judge.InternalError, judge.Worse(judge.TimeLimitExceeded, judge.InternalError))
	assert.Equal(t, judge.RuntimeError, judge.Worse(judge.RuntimeError, judge.WrongAnswer))
}
