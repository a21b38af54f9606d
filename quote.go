package sqlquery

import "strings"

// QuoteANSI adds double quotes to symbols names.
//
// Suitable for PostgreSQL, MySQL in ANSI SQL_MODE, SQLite statements.
func QuoteANSI(tableAndColumn ...string) string {
	return quote(`"`, tableAndColumn)
}

// QuoteBackticks quotes symbol names with backticks.
//
// Suitable for MySQL, SQLite statements.
func QuoteBackticks(tableAndColumn ...string) string {
	return quote("`", tableAndColumn)
}

// QuoteNoop does not add any quotes to symbol names.
func QuoteNoop(tableAndColumn ...string) string {
	return strings.Join(tableAndColumn, ".")
}

func quote(q string, tableAndColumn []string) string {
	res := strings.Builder{}

	for i, item := range tableAndColumn {
		if i != 0 {
			res.WriteString(".")
		}

		res.WriteString(q)
		res.WriteString(strings.ReplaceAll(item, q, q+q))
		res.WriteString(q)
	}

	return res.String()
}
