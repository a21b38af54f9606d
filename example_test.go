package sqlquery_test

import (
	"context"
	"fmt"
	"log"

	"github.com/bool64/sqlquery"
	"github.com/jmoiron/sqlx"
)

func ExampleSplit() {
	statements := sqlquery.Split(`-- First query:
SELECT * from Users Where ";#" = 1;
-- 2nd query:
SELECT name FROM(users)ORDER BY name # no semicolon`)

	for _, st := range statements {
		fmt.Println(st.Type(), st.HasEndingSemicolon(), st.IsOrdered(), st.Canonical())
	}

	// Output:
	// SELECT true false SELECT * from Users Where ";#" = 1 ;
	// SELECT false true SELECT name FROM ( users ) ORDER BY name
}

func ExampleStatement_MatchRegex() {
	st := sqlquery.Split(`select name from users where name not like 'test%'`)[0]

	for _, pattern := range []string{".*like", "test.*", "'test.*'"} {
		m, found := st.MatchRegex(pattern)
		fmt.Printf("%q %v\n", m, found)
	}

	// Output:
	// "not like" true
	// "" false
	// "'test%'" true
}

func ExampleStripComments() {
	fmt.Printf("%q\n", sqlquery.StripComments("SELECT 1 -- one\n/* two */ FROM t # three"))

	// Output:
	// "SELECT 1\n FROM t"
}

func ExampleStorage_Fetch() {
	var (
		db  *sqlx.DB
		ctx context.Context
	)

	s := sqlquery.NewStorage(db)

	for _, st := range sqlquery.Split("SELECT name FROM users ORDER BY name; SELECT COUNT(*) FROM orders;") {
		rs, err := s.Fetch(ctx, st)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Print(rs.CSV())
	}
}
