package sqlquery_test

import (
	"strings"
	"testing"

	"github.com/bool64/sqlquery"
)

func BenchmarkSplit(b *testing.B) {
	s := strings.Repeat(`-- Find ordered customers.
SELECT c.name, COUNT(o.id) AS cnt /* total */
FROM customer c LEFT JOIN orders o ON o.customer_id = c.id
WHERE c.name NOT LIKE 'test;%' AND c.id > -1
GROUP BY c.name
ORDER BY cnt DESC;
`, 10)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if len(sqlquery.Split(s)) != 10 {
			b.Fail()
		}
	}
}

func BenchmarkStripComments(b *testing.B) {
	s := "SELECT 1 -- one\n/* two */ FROM t # three"

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if sqlquery.StripComments(s) != "SELECT 1\n FROM t" {
			b.Fail()
		}
	}
}
