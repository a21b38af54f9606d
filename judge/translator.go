package judge

import (
	"fmt"
	"strings"
)

// Language is a natural language of feedback messages.
type Language int

// Supported languages.
const (
	EN Language = iota
	NL
)

// LanguageFromString returns NL for "nl" and EN for anything else.
func LanguageFromString(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), "nl") {
		return NL
	}

	return EN
}

// Text identifies a feedback message.
type Text int

// Feedback messages.
const (
	AddASemicolon Text = iota
	SubmissionContainsMoreQueries
	SubmissionContainsLessQueries
	DifferentRowCount
	DifferentColumnCount
	ComparingQueryOutputCSVContent
	ComparingQueryOutputTypes
	QueryShouldOrderRows
	QueryShouldNotOrderRows
	RowsAreBeingOrdered
	RowsAreNotBeingOrdered
	QueryTab
	DatabaseStateTab
	ComparingTableContent
)

// ErrorType is a judgement status.
type ErrorType string

// Statuses, from least to most severe.
const (
	Correct             ErrorType = "correct"
	CorrectAnswer       ErrorType = "correct answer"
	Wrong               ErrorType = "wrong"
	WrongAnswer         ErrorType = "wrong answer"
	RuntimeError        ErrorType = "runtime error"
	OutputLimitExceeded ErrorType = "output limit exceeded"
	MemoryLimitExceeded ErrorType = "memory limit exceeded"
	TimeLimitExceeded   ErrorType = "time limit exceeded"
	CompilationError    ErrorType = "compilation error"
	InternalError       ErrorType = "internal error"
)

var severity = map[ErrorType]int{
	Correct:             0,
	CorrectAnswer:       0,
	Wrong:               1,
	WrongAnswer:         1,
	RuntimeError:        2,
	OutputLimitExceeded: 3,
	MemoryLimitExceeded: 4,
	TimeLimitExceeded:   5,
	CompilationError:    6,
	InternalError:       7,
}

// Worse returns the more severe of two statuses.
func Worse(a, b ErrorType) ErrorType {
	if severity[b] > severity[a] {
		return b
	}

	return a
}

// Status is a judgement status with its human readable description.
type Status struct {
	Enum  ErrorType `json:"enum"`
	Human string    `json:"human"`
}

// Translator renders messages and statuses in a natural language.
type Translator struct {
	Language Language
}

// HumanError returns description of a status.
func (t Translator) HumanError(e ErrorType) string {
	if h, ok := errorTranslations[t.Language][e]; ok {
		return h
	}

	return string(e)
}

// ErrorStatus returns status with its description.
func (t Translator) ErrorStatus(e ErrorType) Status {
	return Status{Enum: e, Human: t.HumanError(e)}
}

// Translate renders message text, {name} placeholders are replaced with values of
// matching keys in keysAndValues.
func (t Translator) Translate(text Text, keysAndValues ...interface{}) string {
	msg := textTranslations[t.Language][text]
	if len(keysAndValues) == 0 {
		return msg
	}

	oldnew := make([]string, 0, len(keysAndValues))

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		oldnew = append(oldnew, "{"+fmt.Sprint(keysAndValues[i])+"}", fmt.Sprint(keysAndValues[i+1]))
	}

	return strings.NewReplacer(oldnew...).Replace(msg)
}

var errorTranslations = map[Language]map[ErrorType]string{
	EN: {
		InternalError:       "Internal error",
		CompilationError:    "The query is not valid",
		MemoryLimitExceeded: "Memory limit exceeded",
		TimeLimitExceeded:   "Time limit exceeded",
		OutputLimitExceeded: "Output limit exceeded",
		RuntimeError:        "Crashed while testing",
		Wrong:               "Test failed",
		WrongAnswer:         "Test failed",
		Correct:             "All tests succeeded",
		CorrectAnswer:       "All tests succeeded",
	},
	NL: {
		InternalError:       "Interne fout",
		CompilationError:    "Ongeldige query",
		MemoryLimitExceeded: "Geheugenlimiet overschreden",
		TimeLimitExceeded:   "Tijdslimiet overschreden",
		OutputLimitExceeded: "Outputlimiet overschreden",
		RuntimeError:        "Gecrasht bij testen",
		Wrong:               "Test gefaald",
		WrongAnswer:         "Test gefaald",
		Correct:             "Alle testen geslaagd",
		CorrectAnswer:       "Alle testen geslaagd",
	},
}

var textTranslations = map[Language]map[Text]string{
	EN: {
		AddASemicolon: "Add a semicolon ';' at the end of each SQL query.",
		SubmissionContainsMoreQueries: "Error: the submitted solution contains more queries ({submitted}) than expected ({expected}). " +
			"Make sure that all queries correctly terminate with a semicolon.",
		SubmissionContainsLessQueries: "Error: the submitted solution contains less queries ({submitted}) than expected ({expected}). " +
			"Make sure that all queries correctly terminate with a semicolon.",
		DifferentRowCount:              "Expected row count {expected}, your row count was {submitted}.",
		DifferentColumnCount:           "Expected column count {expected}, your column count was {submitted}.",
		ComparingQueryOutputCSVContent: "Comparing query output csv content",
		ComparingQueryOutputTypes:      "Comparing query output SQL types",
		QueryShouldOrderRows:           "Query should return ordered rows.",
		QueryShouldNotOrderRows:        "No explicit row ordering should be enforced in query.",
		RowsAreBeingOrdered:            "rows are being ordered",
		RowsAreNotBeingOrdered:         "rows are not being ordered",
		QueryTab:                       "Query {n}",
		DatabaseStateTab:               "Database state",
		ComparingTableContent:          "Comparing content of table {table}",
	},
	NL: {
		AddASemicolon: "Voeg een puntkomma ';' toe aan het einde van elke SQL query.",
		SubmissionContainsMoreQueries: "Error: de ingediende oplossing bestaat uit meer queries ({submitted}) dan verwacht ({expected}). " +
			"Zorg ervoor dat elke query correct eindigt op een puntkomma.",
		SubmissionContainsLessQueries: "Error: de ingediende oplossing bestaat uit minder queries ({submitted}) dan verwacht ({expected}). " +
			"Zorg ervoor dat elke query correct eindigt op een puntkomma.",
		DifferentRowCount:              "Verwachtte {expected} rijen, uw aantal rijen is {submitted}.",
		DifferentColumnCount:           "Verwachtte {expected} kolommen, uw aantal kolommen is {submitted}.",
		ComparingQueryOutputCSVContent: "Vergelijken van de query output in csv formaat",
		ComparingQueryOutputTypes:      "Vergelijken van de query output SQL types",
		QueryShouldOrderRows:           "De query moet de rijen gesorteerd teruggeven.",
		QueryShouldNotOrderRows:        "De query mag de rijen niet expliciet gaan sorteren.",
		RowsAreBeingOrdered:            "rijen worden gesorteerd",
		RowsAreNotBeingOrdered:         "rijen worden niet gesorteerd",
		QueryTab:                       "Query {n}",
		DatabaseStateTab:               "Databanktoestand",
		ComparingTableContent:          "Vergelijken van de inhoud van tabel {table}",
	},
}
