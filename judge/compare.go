package judge

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bool64/sqlquery"
)

// Check is an outcome of comparing one aspect of expected and submitted results.
type Check struct {
	Description string
	Expected    string
	Generated   string
	Passed      bool
}

// CompareResults compares query outputs.
//
// Rows are compared in order when ordered is true, otherwise both sides are sorted first.
// Column and row count mismatches are reported instead of content comparison.
func CompareResults(tr Translator, expected, submitted *sqlquery.ResultSet, ordered, checkTypes bool) []Check {
	if !ordered {
		e, s := expected.Sorted(), submitted.Sorted()
		expected, submitted = &e, &s
	}

	if ec, sc := len(expected.Columns), len(submitted.Columns); ec != sc {
		return []Check{{
			Description: tr.Translate(DifferentColumnCount, "expected", ec, "submitted", sc),
			Expected:    expected.CSV(),
			Generated:   submitted.CSV(),
		}}
	}

	if er, sr := len(expected.Rows), len(submitted.Rows); er != sr {
		return []Check{{
			Description: tr.Translate(DifferentRowCount, "expected", er, "submitted", sr),
			Expected:    expected.CSV(),
			Generated:   submitted.CSV(),
		}}
	}

	checks := []Check{textCheck(tr.Translate(ComparingQueryOutputCSVContent), expected.CSV(), submitted.CSV())}

	if checkTypes {
		checks = append(checks, textCheck(tr.Translate(ComparingQueryOutputTypes),
			strings.Join(expected.Types, ", "), strings.Join(submitted.Types, ", ")))
	}

	return checks
}

// CompareOrdering reports whether submitted statement orders rows the same way as expected one.
func CompareOrdering(tr Translator, expected, submitted sqlquery.Statement) (Check, bool) {
	if expected.IsOrdered() == submitted.IsOrdered() {
		return Check{}, false
	}

	c := Check{
		Description: tr.Translate(QueryShouldNotOrderRows),
		Expected:    tr.Translate(RowsAreNotBeingOrdered),
		Generated:   tr.Translate(RowsAreBeingOrdered),
	}

	if expected.IsOrdered() {
		c.Description = tr.Translate(QueryShouldOrderRows)
		c.Expected, c.Generated = c.Generated, c.Expected
	}

	return c, true
}

// CompareTables compares database snapshots table by table, rows are compared sorted.
func CompareTables(tr Translator, expected, submitted []sqlquery.Table) []Check {
	byName := func(tables []sqlquery.Table) map[string]string {
		res := make(map[string]string, len(tables))

		for _, t := range tables {
			res[t.Name] = t.Result.Sorted().CSV()
		}

		return res
	}

	e, s := byName(expected), byName(submitted)

	names := make([]string, 0, len(e)+len(s))
	for name := range e {
		names = append(names, name)
	}

	for name := range s {
		if _, ok := e[name]; !ok {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	checks := make([]Check, 0, len(names))
	for _, name := range names {
		checks = append(checks, textCheck(tr.Translate(ComparingTableContent, "table", strconv.Quote(name)), e[name], s[name]))
	}

	return checks
}

func textCheck(description, expected, generated string) Check {
	return Check{
		Description: description,
		Expected:    expected,
		Generated:   generated,
		Passed:      expected == generated,
	}
}
