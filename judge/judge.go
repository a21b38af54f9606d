// Package judge compares a submitted SQL script against a solution and reports feedback.
package judge

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bool64/ctxd"
	"github.com/bool64/sqlquery"
	"golang.org/x/sync/errgroup"
)

// Executor runs statements against a database.
//
// *sqlquery.Storage implements it.
type Executor interface {
	Fetch(ctx context.Context, qb sqlquery.ToSQL) (*sqlquery.ResultSet, error)
	Exec(ctx context.Context, qb sqlquery.ToSQL) (sql.Result, error)
	Snapshot(ctx context.Context) ([]sqlquery.Table, error)
}

// Judge evaluates submissions.
type Judge struct {
	Config     Config
	Translator Translator
	Logger     ctxd.Logger
}

// New creates a Judge with translator for configured language.
func New(cfg Config) *Judge {
	return &Judge{
		Config:     cfg,
		Translator: Translator{Language: LanguageFromString(cfg.NaturalLanguage)},
		Logger:     ctxd.NoOpLogger{},
	}
}

// Run judges submission against solution.
//
// Submitted statements are executed with submitted executor, solution statements with expected one,
// both databases must start in the same state. Feedback is written to r. An error is returned when
// solution fails or feedback can not be written, the judgement is then closed with internal error.
func (j *Judge) Run(ctx context.Context, submission, solution string, submitted, expected Executor, r *Reporter) (ErrorType, error) {
	r.StartJudgement()

	status, err := j.run(ctx, submission, solution, submitted, expected, r)
	if err != nil {
		j.logger().Error(ctx, "judgement failed", "error", err)
		r.AppendMessage(TextMessage(err.Error()))

		status = InternalError
	}

	st := j.Translator.ErrorStatus(status)
	r.CloseJudgement(severity[status] == 0, &st)

	if err == nil {
		err = r.Err()
	}

	return status, err
}

func (j *Judge) run(ctx context.Context, submission, solution string, submitted, expected Executor, r *Reporter) (ErrorType, error) {
	tr := j.Translator

	var options []func(*sqlquery.Options)
	if j.Config.Phrases != nil {
		options = append(options, sqlquery.Phrases(j.Config.Phrases...))
	}

	want := sqlquery.Split(solution, options...)
	got := sqlquery.Split(submission, options...)

	j.logger().Debug(ctx, "split statements", "expected", len(want), "submitted", len(got))

	if len(got) != len(want) {
		text := SubmissionContainsMoreQueries
		if len(got) < len(want) {
			text = SubmissionContainsLessQueries
		}

		r.AppendMessage(TextMessage(tr.Translate(text, "submitted", len(got), "expected", len(want))))

		return CompilationError, nil
	}

	if !j.Config.AllowMissingSemicolon {
		for _, st := range got {
			if !st.HasEndingSemicolon() {
				r.AppendMessage(TextMessage(tr.Translate(AddASemicolon)))

				break
			}
		}
	}

	status := Correct

	for i := range want {
		if ctx.Err() != nil {
			return TimeLimitExceeded, nil
		}

		r.StartTab(tr.Translate(QueryTab, "n", i+1), false)
		r.StartContext()

		s, err := j.statement(ctx, want[i], got[i], submitted, expected, r)
		if err != nil {
			r.CloseContext(false)
			r.CloseTab()

			return InternalError, ctxd.WrapError(ctx, err, "failed to run solution statement", "index", i)
		}

		r.CloseContext(severity[s] == 0)
		r.CloseTab()

		status = Worse(status, s)
	}

	return status, nil
}

func (j *Judge) statement(ctx context.Context, want, got sqlquery.Statement, submitted, expected Executor, r *Reporter) (ErrorType, error) {
	j.logger().Debug(ctx, "comparing statement", "type", want.Type(), "submitted", got.Canonical())

	if want.IsSelect() {
		return j.query(ctx, want, got, submitted, expected, r)
	}

	return j.exec(ctx, want, got, submitted, expected, r)
}

func (j *Judge) query(ctx context.Context, want, got sqlquery.Statement, submitted, expected Executor, r *Reporter) (ErrorType, error) {
	var (
		wantRS, gotRS *sqlquery.ResultSet
		gotErr        error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		wantRS, err = expected.Fetch(gctx, want)

		return err
	})

	g.Go(func() error {
		gotRS, gotErr = submitted.Fetch(gctx, got)

		return nil
	})

	if err := g.Wait(); err != nil {
		return InternalError, err
	}

	r.StartTestcase(CodeMessage(got.Raw()))

	if gotErr != nil {
		s := j.failure(ctx, gotErr)
		r.StartTest(j.Translator.Translate(ComparingQueryOutputCSVContent), wantRS.CSV())
		r.CloseTest(gotErr.Error(), j.Translator.ErrorStatus(s))
		r.CloseTestcase(false)

		return s, nil
	}

	checks := CompareResults(j.Translator, wantRS, gotRS, j.Config.StrictRowOrder || want.IsOrdered(), j.Config.CheckTypes)

	if c, ok := CompareOrdering(j.Translator, want, got); ok {
		checks = append(checks, c)
	}

	s := j.report(r, checks)
	r.CloseTestcase(s == Correct)

	return s, nil
}

func (j *Judge) exec(ctx context.Context, want, got sqlquery.Statement, submitted, expected Executor, r *Reporter) (ErrorType, error) {
	var (
		wantTables, gotTables []sqlquery.Table
		gotErr                error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if _, err := expected.Exec(gctx, want); err != nil {
			return err
		}

		var err error
		wantTables, err = expected.Snapshot(gctx)

		return err
	})

	g.Go(func() error {
		if _, gotErr = submitted.Exec(gctx, got); gotErr != nil {
			return nil
		}

		gotTables, gotErr = submitted.Snapshot(gctx)

		return nil
	})

	if err := g.Wait(); err != nil {
		return InternalError, err
	}

	r.StartTestcase(CodeMessage(got.Raw()))

	if gotErr != nil {
		s := j.failure(ctx, gotErr)
		r.AppendMessage(TextMessage(gotErr.Error()))
		r.EscalateStatus(j.Translator.ErrorStatus(s))
		r.CloseTestcase(false)

		return s, nil
	}

	r.CloseTestcase(true)

	r.StartTestcase(TextMessage(j.Translator.Translate(DatabaseStateTab)))
	s := j.report(r, CompareTables(j.Translator, wantTables, gotTables))
	r.CloseTestcase(s == Correct)

	return s, nil
}

func (j *Judge) report(r *Reporter, checks []Check) ErrorType {
	status := Correct

	for _, c := range checks {
		s := Correct
		if !c.Passed {
			s = Wrong
		}

		r.StartTest(c.Description, c.Expected)
		r.CloseTest(c.Generated, j.Translator.ErrorStatus(s))

		status = Worse(status, s)
	}

	return status
}

// failure classifies an error of submitted statement.
func (j *Judge) failure(ctx context.Context, err error) ErrorType {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		j.logger().Warn(ctx, "time limit exceeded", "error", err)

		return TimeLimitExceeded
	}

	j.logger().Info(ctx, "submitted statement failed", "error", err)

	return RuntimeError
}

func (j *Judge) logger() ctxd.Logger {
	if j.Logger == nil {
		return ctxd.NoOpLogger{}
	}

	return j.Logger
}
