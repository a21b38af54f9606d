package sqlquery

import (
	"context"
	"database/sql"
	"errors"
	"reflect"

	"github.com/Masterminds/squirrel"
	"github.com/bool64/ctxd"
	"github.com/jmoiron/sqlx"
)

// ToSQL defines query builder.
type ToSQL interface {
	ToSql() (string, []interface{}, error)
}

// StringStatement is a plain string statement.
type StringStatement string

// ToSql implements query builder result.
func (s StringStatement) ToSql() (string, []interface{}, error) { // nolint // Method name matches ext. implementation.
	return string(s), nil, nil
}

// NewStorage creates an instance of Storage.
func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		db: db,
	}
}

// Storage executes statements against a database and reads their results.
type Storage struct {
	db *sqlx.DB

	// Format is a placeholder format, default squirrel.Question.
	// Other values are squirrel.Dollar, squirrel.AtP and squirrel.Colon.
	Format squirrel.PlaceholderFormat

	// IdentifierQuoter is formatter of table names.
	// Default QuoteANSI.
	IdentifierQuoter func(tableAndColumn ...string) string

	// OnError is called when error is encountered, could be useful for logging.
	OnError func(ctx context.Context, err error)

	// Trace wraps a call to database.
	// It takes statement as arguments and returns
	// instrumented context with callback to call after db call is finished.
	Trace func(ctx context.Context, stmt string, args []interface{}) (newCtx context.Context, onFinish func(error))
}

// InTx runs callback in a transaction.
//
// If transaction already exists, it will reuse that. Otherwise it starts a new transaction and commit or rollback
// (in case of error) at the end.
func (s *Storage) InTx(ctx context.Context, fn func(context.Context) error) (err error) {
	var finish func(ctx context.Context, err error) error

	if tx := TxFromContext(ctx); tx == nil {
		finish = s.submitTx

		// Start a new transaction.
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return s.error(ctx, ctxd.WrapError(ctx, err, "failed to begin tx"))
		}

		ctx = TxToContext(ctx, tx)
	} else {
		// Parent transaction is finished by its beginner.
		finish = func(ctx context.Context, err error) error {
			return err
		}
	}

	defer func() {
		err = finish(ctx, err)
	}()

	return fn(ctx)
}

func (s *Storage) submitTx(ctx context.Context, err error) error {
	tx := TxFromContext(ctx)
	if tx == nil {
		return s.error(ctx, ctxd.NewError(ctx, "no running transaction"))
	}

	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return s.error(ctx, ctxd.WrapError(ctx, rbErr, "failed to rollback",
				"error", err,
			))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return s.error(ctx, ctxd.WrapError(ctx, err, "failed to commit"))
	}

	return nil
}

// Exec executes statement, Statement values can be passed as is.
func (s *Storage) Exec(ctx context.Context, qb ToSQL) (res sql.Result, err error) {
	var execer sqlx.ExecerContext
	if tx := TxFromContext(ctx); tx != nil {
		execer = tx
	} else {
		execer = s.db
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, s.error(ctx, ctxd.WrapError(ctx, err, "failed to build query"))
	}

	if s.Trace != nil {
		ct, def := s.Trace(ctx, query, args)
		ctx = ct

		defer func() { def(err) }()
	}

	res, err = execer.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, s.error(ctx, err)
	}

	return res, nil
}

// ExecScript executes all statements of an SQL script in a single transaction.
func (s *Storage) ExecScript(ctx context.Context, script string) error {
	return s.InTx(ctx, func(ctx context.Context) error {
		for i, stmt := range SplitStatements(script) {
			if _, err := s.Exec(ctx, StringStatement(stmt)); err != nil {
				return ctxd.WrapError(ctx, err, "failed to execute script statement", "index", i)
			}
		}

		return nil
	})
}

// Query queries database and returns raw result.
//
// Fetch is recommended to use instead of Query.
func (s *Storage) Query(ctx context.Context, qb ToSQL) (rows *sqlx.Rows, err error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, s.error(ctx, ctxd.WrapError(ctx, err, "failed to build query"))
	}

	if s.Trace != nil {
		ct, def := s.Trace(ctx, query, args)
		ctx = ct

		defer func() { def(err) }()
	}

	var queryer sqlx.QueryerContext
	if tx := TxFromContext(ctx); tx != nil {
		queryer = tx
	} else {
		queryer = s.db
	}

	rows, err = queryer.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, s.error(ctx, err)
	}

	return rows, nil
}

// Fetch queries statement and reads all rows as text.
func (s *Storage) Fetch(ctx context.Context, qb ToSQL) (*ResultSet, error) {
	rows, err := s.Query(ctx, qb)
	if err != nil {
		return nil, err
	}

	defer func() {
		if clErr := rows.Close(); clErr != nil && s.OnError != nil {
			s.OnError(ctx, ctxd.WrapError(ctx, clErr, "failed to close rows"))
		}
	}()

	rs, err := readResultSet(rows.Rows)
	if err != nil {
		return nil, s.error(ctx, ctxd.WrapError(ctx, err, "failed to read rows"))
	}

	return rs, nil
}

// Select queries statement of query builder and scans result into destination.
//
// Destination can be a pointer to struct or slice, e.g. `*row` or `*[]row`.
func (s *Storage) Select(ctx context.Context, qb ToSQL, dest interface{}) (err error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return s.error(ctx, ctxd.WrapError(ctx, err, "failed to build query"))
	}

	if s.Trace != nil {
		ct, def := s.Trace(ctx, query, args)
		ctx = ct

		defer func() { def(err) }()
	}

	var queryer sqlx.QueryerContext
	if tx := TxFromContext(ctx); tx != nil {
		queryer = tx
	} else {
		queryer = s.db
	}

	kind := reflect.Indirect(reflect.ValueOf(dest)).Kind()
	if kind == reflect.Slice {
		err = sqlx.SelectContext(ctx, queryer, dest, query, args...)
	} else {
		err = sqlx.GetContext(ctx, queryer, dest, query, args...)
	}

	return s.error(ctx, err)
}

// QueryBuilder returns query builder with placeholder format.
func (s *Storage) QueryBuilder() squirrel.StatementBuilderType {
	format := s.Format

	if format == nil {
		format = squirrel.Question
	}

	return squirrel.StatementBuilder.PlaceholderFormat(format).RunWith(s.db)
}

// Tables lists names of user tables of an SQLite database.
func (s *Storage) Tables(ctx context.Context) ([]string, error) {
	qb := s.QueryBuilder().
		Select("name").
		From("sqlite_master").
		Where(squirrel.Eq{"type": "table"}).
		Where(squirrel.NotLike{"name": "sqlite_%"}).
		OrderBy("name")

	return List[string](ctx, s, qb)
}

// Snapshot reads contents of all user tables.
func (s *Storage) Snapshot(ctx context.Context) ([]Table, error) {
	names, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(names))

	for _, name := range names {
		rs, err := s.Fetch(ctx, s.QueryBuilder().Select("*").From(s.quote(name)))
		if err != nil {
			return nil, ctxd.WrapError(ctx, err, "failed to read table", "table", name)
		}

		tables = append(tables, Table{Name: name, Result: *rs})
	}

	return tables, nil
}

func (s *Storage) quote(name string) string {
	if s.IdentifierQuoter == nil {
		return QuoteANSI(name)
	}

	return s.IdentifierQuoter(name)
}

func (s *Storage) error(ctx context.Context, err error) error {
	if err != nil && s.OnError != nil && !errors.Is(err, sql.ErrNoRows) {
		s.OnError(ctx, err)
	}

	return err
}

type txKey struct{}

// TxToContext adds transaction to context, Storage operations with this context run in it.
func TxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext gets transaction or nil from context.
func TxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)

	return tx
}

// DB returns database instance.
func (s *Storage) DB() *sqlx.DB {
	return s.db
}

// Get retrieves a single row from database storage.
func Get[V any](ctx context.Context, s *Storage, qb ToSQL) (V, error) {
	var v V

	err := s.Select(ctx, qb, &v)

	return v, err
}

// List retrieves a collection of rows from database storage.
func List[V any](ctx context.Context, s *Storage, qb ToSQL) ([]V, error) {
	var v []V

	err := s.Select(ctx, qb, &v)

	return v, err
}
