//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
	"os"
	"path/filepath"
	"time"
)

// SQLStore - the SQLite backend; driver is MODERNC or MATTN
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore - open (or create) the database file at fn
func NewSQLStore(ctx context.Context, driver string, fn string) (*SQLStore, error) {
	const (
		FAIL1 = "could not open %s database '%s': %w"
	)

	if driver != MODERNC && driver != MATTN {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownProvider, driver)
	}

	if d := filepath.Dir(fn); d != "" {
		if err := os.MkdirAll(d, vv.DIRPERMS); err != nil {
			return nil, fmt.Errorf(FAIL1, driver, fn, err)
		}
	}

	sdb, err := sql.Open(driver, fn)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, driver, fn, err)
	}

	for _, p := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err = sdb.ExecContext(ctx, p); err != nil {
			sdb.Close()
			return nil, fmt.Errorf(FAIL1, driver, fn, err)
		}
	}

	Msg.TMI(fmt.Sprintf("NewSQLStore(): '%s' opened via '%s'", fn, driver))
	return &SQLStore{db: sdb, driver: driver}, nil
}

func (s *SQLStore) Close() {
	if err := s.db.Close(); err != nil {
		Msg.WARN(fmt.Sprintf("SQLStore.Close(): %s", err.Error()))
	}
}

func (s *SQLStore) InitSchema(ctx context.Context) error {
	for _, q := range schema(SQLSERIAL, SQLBLOB) {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("InitSchema(): %w", err)
		}
	}
	Msg.FYI("SQLite tables are ready")
	return nil
}

// intx - run f inside a transaction; commit if it succeeds
func (s *SQLStore) intx(ctx context.Context, f func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err = f(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// AppendTweets - insert the raw rows; ids already present are skipped
func (s *SQLStore) AppendTweets(ctx context.Context, tweets []str.Tweet) (int, error) {
	const (
		INS = `INSERT INTO %s (read_tweet_id, created_at, read_text_clean2, perceived_susceptibility,
			perceived_severity, perceived_benefits, perceived_barriers)
			VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT (read_tweet_id) DO NOTHING`
	)

	added := 0
	err := s.intx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(INS, TWEETSTABLE))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, t := range tweets {
			res, e := stmt.ExecContext(ctx, t.ID, t.CreatedAt, t.Text, t.Susceptibility, t.Severity, t.Benefits, t.Barriers)
			if e != nil {
				return e
			}
			n, _ := res.RowsAffected()
			added += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("AppendTweets(): %w", err)
	}
	return added, nil
}

func (s *SQLStore) AppendTopics(ctx context.Context, rows []str.TopicRow) error {
	if err := s.intx(ctx, func(tx *sql.Tx) error { return sqltopics(ctx, tx, rows) }); err != nil {
		return fmt.Errorf("AppendTopics(): %w", err)
	}
	return nil
}

func (s *SQLStore) AppendMatrix(ctx context.Context, rows []str.MatrixRow) error {
	if err := s.intx(ctx, func(tx *sql.Tx) error { return sqlmatrix(ctx, tx, rows) }); err != nil {
		return fmt.Errorf("AppendMatrix(): %w", err)
	}
	return nil
}

// ClearWindow - forget the topics, matrix, and model of a window so that it can be rerun
func (s *SQLStore) ClearWindow(ctx context.Context, label string) error {
	if err := s.intx(ctx, func(tx *sql.Tx) error { return sqlclear(ctx, tx, label) }); err != nil {
		return fmt.Errorf("ClearWindow(): %w", err)
	}
	return nil
}

func (s *SQLStore) StoreModel(ctx context.Context, rec ModelRecord) error {
	if err := s.intx(ctx, func(tx *sql.Tx) error { return sqlmodel(ctx, tx, rec) }); err != nil {
		return fmt.Errorf("StoreModel(): %w", err)
	}
	Msg.TMI(fmt.Sprintf("StoreModel(): %s (%d bytes)", rec.Label, len(rec.Data)))
	return nil
}

// ReplaceWindow - clear and rewrite a window in one transaction
func (s *SQLStore) ReplaceWindow(ctx context.Context, w WindowRecord) error {
	err := s.intx(ctx, func(tx *sql.Tx) error {
		if err := sqlclear(ctx, tx, w.Label); err != nil {
			return err
		}
		if err := sqltopics(ctx, tx, w.Topics); err != nil {
			return err
		}
		if err := sqlmatrix(ctx, tx, w.Matrix); err != nil {
			return err
		}
		return sqlmodel(ctx, tx, w.Model)
	})
	if err != nil {
		return fmt.Errorf("ReplaceWindow(): %s left as it was: %w", w.Label, err)
	}
	return nil
}

func sqltopics(ctx context.Context, tx *sql.Tx, rows []str.TopicRow) error {
	const (
		INS = `INSERT INTO %s (date, topic_num, prob, doc_id, tweet, perceived_susceptibility,
			perceived_severity, perceived_benefits, perceived_barriers) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	)
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(INS, vv.TOPICSTABLE))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, e := stmt.ExecContext(ctx, r.Date, r.Topic, r.Prob, r.DocID, r.Tweet,
			r.Susceptibility, r.Severity, r.Benefits, r.Barriers); e != nil {
			return e
		}
	}
	return nil
}

func sqlmatrix(ctx context.Context, tx *sql.Tx, rows []str.MatrixRow) error {
	const (
		INS = `INSERT INTO %s (date, topic_num, doc_count, perceived_susceptibility,
			perceived_severity, perceived_benefits, perceived_barriers) VALUES (?, ?, ?, ?, ?, ?, ?)`
	)
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(INS, vv.MATRIXTABLE))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, e := stmt.ExecContext(ctx, r.Date, r.Topic, r.Count,
			r.Susceptibility, r.Severity, r.Benefits, r.Barriers); e != nil {
			return e
		}
	}
	return nil
}

func sqlclear(ctx context.Context, tx *sql.Tx, label string) error {
	for _, t := range []string{vv.TOPICSTABLE, vv.MATRIXTABLE} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE date = ?`, t), label); err != nil {
			return err
		}
	}
	_, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE label = ?`, MODELSTABLE), label)
	return err
}

func sqlmodel(ctx context.Context, tx *sql.Tx, rec ModelRecord) error {
	const (
		UPS = `INSERT OR REPLACE INTO %s (label, run_id, k, coherence, fingerprint, created, modeldata)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	)
	_, err := tx.ExecContext(ctx, fmt.Sprintf(UPS, MODELSTABLE), rec.Label, rec.RunID, rec.K, rec.Coherence,
		rec.Fingerprint, rec.Created.Format(time.RFC3339), rec.Data)
	return err
}

func (s *SQLStore) FetchModel(ctx context.Context, label string) (ModelRecord, error) {
	const (
		Q = `SELECT label, run_id, k, coherence, fingerprint, created, modeldata FROM %s WHERE label = ?`
	)
	var rec ModelRecord
	var created string
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(Q, MODELSTABLE), label).
		Scan(&rec.Label, &rec.RunID, &rec.K, &rec.Coherence, &rec.Fingerprint, &created, &rec.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("model '%s': %w", label, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("FetchModel(): %w", err)
	}
	rec.Created, _ = time.Parse(time.RFC3339, created)
	return rec, nil
}

func (s *SQLStore) FetchTopics(ctx context.Context, label string) ([]str.TopicRow, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(SELTOPICS, vv.TOPICSTABLE, "?"), label)
	if err != nil {
		return nil, fmt.Errorf("FetchTopics(): %w", err)
	}
	defer rows.Close()

	var found []str.TopicRow
	for rows.Next() {
		var r str.TopicRow
		if err = rows.Scan(&r.Date, &r.Topic, &r.Prob, &r.DocID, &r.Tweet,
			&r.Susceptibility, &r.Severity, &r.Benefits, &r.Barriers); err != nil {
			return nil, fmt.Errorf("FetchTopics(): %w", err)
		}
		found = append(found, r)
	}
	return found, rows.Err()
}

func (s *SQLStore) FetchMatrix(ctx context.Context, label string) ([]str.MatrixRow, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(SELMATRIX, vv.MATRIXTABLE, "?"), label)
	if err != nil {
		return nil, fmt.Errorf("FetchMatrix(): %w", err)
	}
	defer rows.Close()

	var found []str.MatrixRow
	for rows.Next() {
		var r str.MatrixRow
		if err = rows.Scan(&r.Date, &r.Topic, &r.Count,
			&r.Susceptibility, &r.Severity, &r.Benefits, &r.Barriers); err != nil {
			return nil, fmt.Errorf("FetchMatrix(): %w", err)
		}
		found = append(found, r)
	}
	return found, rows.Err()
}

func (s *SQLStore) Windows(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(SELWINDOWS, vv.TOPICSTABLE))
	if err != nil {
		return nil, fmt.Errorf("Windows(): %w", err)
	}
	defer rows.Close()

	var ww []string
	for rows.Next() {
		var w string
		if err = rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("Windows(): %w", err)
		}
		ww = append(ww, w)
	}
	return ww, rows.Err()
}
