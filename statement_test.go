package sqlquery_test

import (
	"regexp"
	"testing"

	"github.com/bool64/sqlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatement_withoutComments(t *testing.T) {
	st := single(t, "SELECT * from Users Where \";\" = 1 ORdER BY Name ASC;")
	assert.Equal(t, "SELECT * from Users Where \";\" = 1 ORdER BY Name ASC;", st.WithoutComments())
	assert.True(t, st.HasEndingSemicolon())
	assert.True(t, st.IsSelect())
	assert.True(t, st.IsOrdered())

	st = single(t, "--SELECT\n   INSERT INTO table2 /**/  SELECT * FROM Users Where \";#ORDER BY\" = 1;")
	assert.Equal(t, "INSERT INTO table2  SELECT * FROM Users Where \";#ORDER BY\" = 1;", st.WithoutComments())
	assert.True(t, st.HasEndingSemicolon())
	assert.False(t, st.IsSelect())
	assert.False(t, st.IsOrdered())
}

func TestStatement_Canonical_formatted(t *testing.T) {
	for _, tc := range []struct {
		in, withoutComments, canonical string
	}{
		{"\n  SELeCT\n*\tFROm   USERS  \n\r", "SELeCT\n*\tFROm   USERS", "SELeCT * FROm USERS"},
		{
			"\n        SELECT *\n            from users\n\n\n\n            /* test */\n        ",
			"SELECT *\n            from users",
			"SELECT * from users",
		},
		{"--Select all:\n        SELECT * FROM Customers;", "SELECT * FROM Customers;", "SELECT * FROM Customers ;"},
		{"SELECT * FROM Customers; --Select all:", "SELECT * FROM Customers;", "SELECT * FROM Customers ;"},
		{"# Select all:\n        Select * FROM Customers;", "Select * FROM Customers;", "Select * FROM Customers ;"},
		{"SELECT * FROM Customers; # Select all:", "SELECT * FROM Customers;", "SELECT * FROM Customers ;"},
		{
			"/* Select all employees whose compensation is\n        greater than that of Pataballa. */\n" +
				"        SELECT * FROM Customers; # Select all:",
			"SELECT * FROM Customers;",
			"SELECT * FROM Customers ;",
		},
		{"SELECT/**/1", "SELECT 1", "SELECT 1"},
		{"SELECT 1 -- one\nFROM t", "SELECT 1\nFROM t", "SELECT 1 FROM t"},
	} {
		st := single(t, tc.in)
		assert.Equal(t, tc.withoutComments, st.WithoutComments(), tc.in)
		assert.Equal(t, tc.canonical, st.Canonical(), tc.in)
		assert.Equal(t, tc.canonical, st.String(), tc.in)
	}
}

func TestStatement_Canonical_special(t *testing.T) {
	for _, tc := range []struct {
		in, canonical string
	}{
		{
			"-- /* aa*/\n            /*\n                    -- qq\n            */\n            " +
				"SELECT'test'FROM[Customers]WHERE 1=1 OR 2-4=33 OR '    like   ' LIKE'%%'; # Select all:",
			"SELECT 'test' FROM [Customers] WHERE 1 = 1 OR 2 -4 = 33 OR '    like   ' LIKE '%%' ;",
		},
		{"select'asdf'as[asdf]into[#MyTable]", "select 'asdf' as [asdf] into [#MyTable]"},
		{"select 'asdf' as [asdf] into [#MyTable]", "select 'asdf' as [asdf] into [#MyTable]"},
		{"SELECT(COUNT(id))FROM(users)where(id>5)", "SELECT ( COUNT ( id ) ) FROM ( users ) where ( id > 5 )"},
		{
			"SELECT(count(name))[aaaaa],[name]as'test'FROM(sqlite_master);",
			"SELECT ( count ( name ) ) [aaaaa], [name] as 'test' FROM ( sqlite_master ) ;",
		},
		{
			"SELECT'\n\n\n',(\ncount\n(name))\n[aaaaa],[name]as'test'FROM(sqlite_master);",
			"SELECT '\n\n\n', ( count ( name ) ) [aaaaa], [name] as 'test' FROM ( sqlite_master ) ;",
		},
		{"SELECT a<=b, a<>b, a!=b, a||b, x::int, -.5, 1.5e10, 2 - 4", "SELECT a <= b, a <> b, a != b, a || b, x :: int, -.5, 1.5e10, 2 - 4"},
		{"select t.*, t.name from t", "select t.*, t.name from t"},
	} {
		st := single(t, tc.in)
		assert.Equal(t, tc.canonical, st.Canonical(), tc.in)

		// Canonical form is stable.
		assert.Equal(t, tc.canonical, sqlquery.Canonicalize(st.Canonical()), tc.in)
	}
}

func TestStatement_IsSelect(t *testing.T) {
	for _, tc := range []struct {
		in, canonical string
		isSelect      bool
	}{
		{"  SELeCT\n*\tFROm   USERS  \n\r", "SELeCT * FROm USERS", true},
		{"\nSELECT *\n    from\n       users\n", "SELECT * from users", true},
		{
			"\n        INSERT INTO table2\n        SELECT * FROM table1\n        WHERE condition;\n        ",
			"INSERT INTO table2 SELECT * FROM table1 WHERE condition ;",
			false,
		},
		{
			"\n        -- Comment\n        SELECT * FROM table1\n        WHERE condition;\n        ",
			"SELECT * FROM table1 WHERE condition ;",
			true,
		},
	} {
		st := single(t, tc.in)
		assert.Equal(t, tc.canonical, st.Canonical(), tc.in)
		assert.Equal(t, tc.isSelect, st.IsSelect(), tc.in)
	}
}

func TestStatement_IsOrdered(t *testing.T) {
	for _, tc := range []struct {
		in, canonical string
		ordered       bool
	}{
		{
			"SELECT column1, column2\n        FROM table_name\n        ORDER BY column1, column2 ASC|DESC;\n        ",
			"SELECT column1, column2 FROM table_name ORDER BY column1, column2 ASC | DESC ;",
			true,
		},
		{
			"# ORDER BY\n        SELECT column1, column2\n        FROM table_name\n        ",
			"SELECT column1, column2 FROM table_name",
			false,
		},
		{"select * from users", "select * from users", false},
		{`select "ORDER BY" from users`, `select "ORDER BY" from users`, false},
		{
			`select "ORDER BY", (SELECT 1 ORDER BY test) from users`,
			`select "ORDER BY", ( SELECT 1 ORDER BY test ) from users`,
			false,
		},
		{
			"select (select 1 order by a) x from users order\n\tby x",
			"select ( select 1 order by a ) x from users order by x",
			true,
		},
		{"select [order by] from t", "select [order by] from t", false},
		{"select a from t /* order by a */", "select a from t", false},
		{"select (a from t order by a", "select ( a from t order by a", false},
		{"select a) from t order by a", "select a ) from t order by a", true},
	} {
		st := single(t, tc.in)
		assert.Equal(t, tc.canonical, st.Canonical(), tc.in)
		assert.Equal(t, tc.ordered, st.IsOrdered(), tc.in)
	}

	st := single(t, "select a from t order by a")
	assert.True(t, st.IsOrdered())

	res := sqlquery.Split("select a from t order by a", sqlquery.Phrases())
	require.Len(t, res, 1)
	assert.True(t, res[0].IsOrdered(), "ORDER BY is detected without phrase table")
}

func TestStatement_Type(t *testing.T) {
	for in, typ := range map[string]string{
		`select * from users WHERE zip LIKE "test"`:                "SELECT",
		`INSERT INTO table_name (column) VALUES ("value");`:        "INSERT",
		"DELETE FROM table_name WHERE condition;":                  "DELETE",
		"INSERT INTO table2 SELECT * FROM table1 WHERE condition;": "INSERT",
		"update t set a = 1":                                       "UPDATE",
		"  with x as (select 1) select * from x":                   "WITH",
		"(select 1)":                                               "(",
	} {
		assert.Equal(t, typ, single(t, in).Type(), in)
	}
}

func TestStatement_MatchRegex(t *testing.T) {
	st := single(t, `select * from users WHERE zip LIKE "test"`)
	assertMatch(t, st, "LIKE", "LIKE")

	st = single(t, `select * from users WHERE zip = "LIKE"`)
	assertMatch(t, st, "select", "select")
	assertNoMatch(t, st, "sel")
	assertMatch(t, st, "sel...", "select")
	assertMatch(t, st, "from", "from")
	assertMatch(t, st, "users", "users")
	assertMatch(t, st, "WHERE", "WHERE")
	assertMatch(t, st, "zip", "zip")
	assertMatch(t, st, `"LIKE"`, `"LIKE"`)
	assertNoMatch(t, st, "LIKE")

	st = single(t, `select (SELECT COUNT(*) FROM table WHERE zip = "LIKE") from users`)
	assertMatch(t, st, "select", "select")
	assertMatch(t, st, "count", "COUNT")
	assertMatch(t, st, "from", "FROM")
	assertMatch(t, st, "table", "table")
	assertMatch(t, st, "WHERE", "WHERE")
	assertMatch(t, st, "zip", "zip")
	assertMatch(t, st, "users", "users")

	st = single(t, "select CITY as like from users")
	assertMatch(t, st, "select", "select")
	assertMatch(t, st, "CITY", "CITY")
	assertMatch(t, st, "as", "as")
	assertMatch(t, st, "like", "like")
	assertMatch(t, st, "from", "from")
	assertMatch(t, st, "users", "users")

	st = single(t, "select DISTICT CITY from users")
	assertMatch(t, st, "DISTICT", "DISTICT")

	st = single(t, "select DISTICT CITY from users where name not like 'test%'")
	assertMatch(t, st, ".*like", "not like")
	assertMatch(t, st, "not\\s+like", "not like")

	st = single(t, "select a from t group  \n by a")
	assertMatch(t, st, "group by", "group by")
	assertNoMatch(t, st, "group")

	assertNoMatch(t, st, "(unclosed")

	st = single(t, "select xyz from users")
	assertNoMatch(t, st, "x)|(q")
	assertNoMatch(t, st, "q)|(z")
	assertMatch(t, st, "x.z|q", "xyz")
}

func TestStatement_MatchRegex_phraseWords(t *testing.T) {
	st := single(t, "select a from t inner join u on u.id = t.id where b is not null")

	assertNoMatch(t, st, "join")
	assertNoMatch(t, st, "inner")
	assertMatch(t, st, ".*join", "inner join")
	assertMatch(t, st, "null", "null")
	assertMatch(t, st, "not", "not")
	assertMatch(t, st, "is", "is")
}

func TestStatement_Match(t *testing.T) {
	st := single(t, "select a, b from t order by b")

	re, err := sqlquery.MatchPattern("ORDER.*")
	require.NoError(t, err)

	m, found := st.Match(re)
	assert.True(t, found)
	assert.Equal(t, "order by", m)

	m, found = st.Match(regexp.MustCompile("^[ab]$"))
	assert.True(t, found)
	assert.Equal(t, "a", m)

	_, err = sqlquery.MatchPattern("(")
	assert.Error(t, err)

	_, err = sqlquery.MatchPattern("x)|(q")
	assert.Error(t, err)
}

func TestStatement_ToSql(t *testing.T) {
	st := single(t, "-- c\nSELECT 1;")

	query, args, err := st.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", query)
	assert.Nil(t, args)
}

func assertMatch(t *testing.T, st sqlquery.Statement, pattern, expected string) {
	t.Helper()

	m, found := st.MatchRegex(pattern)
	assert.True(t, found, pattern)
	assert.Equal(t, expected, m, pattern)
}

func assertNoMatch(t *testing.T, st sqlquery.Statement, pattern string) {
	t.Helper()

	m, found := st.MatchRegex(pattern)
	assert.False(t, found, pattern)
	assert.Empty(t, m, pattern)
}
