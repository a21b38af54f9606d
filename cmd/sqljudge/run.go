package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/sqlquery"
	"github.com/bool64/sqlquery/judge"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver.
)

func run(ctx context.Context, f flags, stdin io.Reader, stdout, stderr io.Writer) error {
	logger, err := newLogger(stderr, f.logLevel, f.color)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	cfg, err := loadConfig(f.config, stdin)
	if err != nil {
		return err
	}

	submission, err := os.ReadFile(filepath.Clean(cfg.Source))
	if err != nil {
		return fmt.Errorf("read submission: %w", err)
	}

	solution, err := os.ReadFile(cfg.SolutionPath())
	if err != nil {
		return fmt.Errorf("read solution: %w", err)
	}

	dir, err := os.MkdirTemp(cfg.Workdir, "sqljudge-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn(ctx, "failed to remove work dir", "dir", dir, "error", err)
		}
	}()

	expected, err := openCopy(ctx, logger, cfg.DatabasePath(), filepath.Join(dir, "expected.sqlite"))
	if err != nil {
		return err
	}

	defer closeDB(ctx, logger, expected)

	submitted, err := openCopy(ctx, logger, cfg.DatabasePath(), filepath.Join(dir, "submitted.sqlite"))
	if err != nil {
		return err
	}

	defer closeDB(ctx, logger, submitted)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	j := judge.New(cfg)
	j.Logger = logger

	status, err := j.Run(ctx, string(submission), string(solution), submitted, expected, judge.NewReporter(stdout))
	if err != nil {
		return err
	}

	logger.Info(ctx, "judgement finished", "status", status)

	return nil
}

func loadConfig(path string, stdin io.Reader) (judge.Config, error) {
	if path != "" {
		return judge.LoadConfig(path)
	}

	return judge.ReadConfig(stdin)
}

// openCopy copies database file to dst and opens the copy.
// A missing source database gives an empty database.
func openCopy(ctx context.Context, logger ctxd.Logger, src, dst string) (*sqlquery.Storage, error) {
	if err := copyFile(src, dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("copy database: %w", err)
	}

	db, err := sqlx.Open("sqlite3", dst)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	name := filepath.Base(dst)
	st := sqlquery.NewStorage(db)
	st.IdentifierQuoter = sqlquery.QuoteANSI

	st.OnError = func(ctx context.Context, err error) {
		logger.Debug(ctx, "statement failed", "db", name, "error", err)
	}

	st.Trace = func(ctx context.Context, stmt string, args []interface{}) (context.Context, func(error)) {
		start := time.Now()

		return ctx, func(err error) {
			logger.Debug(ctx, "statement executed", "db", name, "stmt", stmt, "args", args,
				"elapsed", time.Since(start).String(), "error", err)
		}
	}

	logger.Debug(ctx, "database opened", "path", dst)

	return st, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	defer in.Close() //nolint:errcheck // Read-only file.

	out, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return err
	}

	defer func() {
		if clErr := out.Close(); clErr != nil && err == nil {
			err = clErr
		}
	}()

	_, err = io.Copy(out, in)

	return err
}

func closeDB(ctx context.Context, logger ctxd.Logger, st *sqlquery.Storage) {
	if err := st.DB().Close(); err != nil {
		logger.Warn(ctx, "failed to close database", "error", err)
	}
}
