package sqlquery

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ResultSet is a query result with all cells rendered as text.
type ResultSet struct {
	Columns []string
	Types   []string
	Rows    [][]string
}

// Table is a snapshot of database table contents.
type Table struct {
	Name   string
	Result ResultSet
}

// CSV renders header and rows in CSV format.
func (rs ResultSet) CSV() string {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if len(rs.Columns) > 0 {
		_ = w.Write(rs.Columns) // Writing to bytes.Buffer does not fail.
	}

	_ = w.WriteAll(rs.Rows) // WriteAll flushes.

	return buf.String()
}

// Sorted returns a copy with rows in lexicographical order.
func (rs ResultSet) Sorted() ResultSet {
	rows := make([][]string, len(rs.Rows))
	copy(rows, rs.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		for k := 0; k < len(a) && k < len(b); k++ {
			if c := strings.Compare(a[k], b[k]); c != 0 {
				return c < 0
			}
		}

		return len(a) < len(b)
	})

	rs.Rows = rows

	return rs
}

func readResultSet(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}

	rs := ResultSet{
		Columns: cols,
		Types:   make([]string, len(types)),
		Rows:    [][]string{},
	}

	for i, t := range types {
		rs.Types[i] = t.DatabaseTypeName()
	}

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))

	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}

		rs.Rows = append(rs.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &rs, nil
}

func formatCell(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}
