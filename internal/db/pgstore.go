//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"strings"
	"time"
)

// PGStore - the PostgreSQL backend
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore - build the pgxpool and make sure the server answers
func NewPGStore(ctx context.Context, pl str.PostgresLogin) (*PGStore, error) {
	const (
		UTPL    = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		FAIL1   = "configuration error: could not execute ParseConfig(url) for '%s@%s:%d/%s': %w"
		FAIL2   = "could not connect to PostgreSQL: %w"
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `there is configuration problem; see the following response from PostgreSQL:`
	)

	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, 1, vv.SIMULTANEOUSCONNS)

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, pl.User, pl.Host, pl.Port, pl.DBName, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		if strings.Contains(err.Error(), ERRRUN) {
			Msg.MAND(fmt.Sprintf(FAILRUN, pl.Port))
		}
		if strings.Contains(err.Error(), ERRSRV) {
			Msg.MAND(FAILSRV)
			parts := strings.Split(err.Error(), ERRSRV)
			Msg.CRIT(parts[len(parts)-1])
		}
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf(FAIL2, err)
	}

	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

func (s *PGStore) InitSchema(ctx context.Context) error {
	for _, q := range schema(PGSERIAL, PGBLOB) {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("InitSchema(): %w", err)
		}
	}
	Msg.FYI("PostgreSQL tables are ready")
	return nil
}

// AppendTweets - insert the raw rows; ids already present are skipped
func (s *PGStore) AppendTweets(ctx context.Context, tweets []str.Tweet) (int, error) {
	const (
		INS = `INSERT INTO %s (read_tweet_id, created_at, read_text_clean2, perceived_susceptibility,
			perceived_severity, perceived_benefits, perceived_barriers)
			VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (read_tweet_id) DO NOTHING`
	)

	q := fmt.Sprintf(INS, TWEETSTABLE)
	b := &pgx.Batch{}
	for _, t := range tweets {
		b.Queue(q, t.ID, t.CreatedAt, t.Text, t.Susceptibility, t.Severity, t.Benefits, t.Barriers)
	}

	br := s.pool.SendBatch(ctx, b)
	defer br.Close()

	added := 0
	for range tweets {
		tag, err := br.Exec()
		if err != nil {
			return added, fmt.Errorf("AppendTweets(): %w", err)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}

func (s *PGStore) AppendTopics(ctx context.Context, rows []str.TopicRow) error {
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error { return pgtopics(ctx, tx, rows) }); err != nil {
		return fmt.Errorf("AppendTopics(): %w", err)
	}
	return nil
}

func (s *PGStore) AppendMatrix(ctx context.Context, rows []str.MatrixRow) error {
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error { return pgmatrix(ctx, tx, rows) }); err != nil {
		return fmt.Errorf("AppendMatrix(): %w", err)
	}
	return nil
}

// ClearWindow - forget the topics, matrix, and model of a window so that it can be rerun
func (s *PGStore) ClearWindow(ctx context.Context, label string) error {
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error { return pgclear(ctx, tx, label) }); err != nil {
		return fmt.Errorf("ClearWindow(): %w", err)
	}
	return nil
}

func (s *PGStore) StoreModel(ctx context.Context, rec ModelRecord) error {
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error { return pgmodel(ctx, tx, rec) }); err != nil {
		return fmt.Errorf("StoreModel(): %w", err)
	}
	Msg.TMI(fmt.Sprintf("StoreModel(): %s (%d bytes)", rec.Label, len(rec.Data)))
	return nil
}

// ReplaceWindow - clear and rewrite a window in one transaction
func (s *PGStore) ReplaceWindow(ctx context.Context, w WindowRecord) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := pgclear(ctx, tx, w.Label); err != nil {
			return err
		}
		if err := pgtopics(ctx, tx, w.Topics); err != nil {
			return err
		}
		if err := pgmatrix(ctx, tx, w.Matrix); err != nil {
			return err
		}
		return pgmodel(ctx, tx, w.Model)
	})
	if err != nil {
		return fmt.Errorf("ReplaceWindow(): %s left as it was: %w", w.Label, err)
	}
	return nil
}

func pgtopics(ctx context.Context, tx pgx.Tx, rows []str.TopicRow) error {
	cols := []string{"date", "topic_num", "prob", "doc_id", "tweet", "perceived_susceptibility",
		"perceived_severity", "perceived_benefits", "perceived_barriers"}

	src := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		r := rows[i]
		return []any{r.Date, r.Topic, r.Prob, r.DocID, r.Tweet, r.Susceptibility, r.Severity, r.Benefits, r.Barriers}, nil
	})
	_, err := tx.CopyFrom(ctx, pgx.Identifier{vv.TOPICSTABLE}, cols, src)
	return err
}

func pgmatrix(ctx context.Context, tx pgx.Tx, rows []str.MatrixRow) error {
	cols := []string{"date", "topic_num", "doc_count", "perceived_susceptibility",
		"perceived_severity", "perceived_benefits", "perceived_barriers"}

	src := pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		r := rows[i]
		return []any{r.Date, r.Topic, r.Count, r.Susceptibility, r.Severity, r.Benefits, r.Barriers}, nil
	})
	_, err := tx.CopyFrom(ctx, pgx.Identifier{vv.MATRIXTABLE}, cols, src)
	return err
}

func pgclear(ctx context.Context, tx pgx.Tx, label string) error {
	for _, t := range []string{vv.TOPICSTABLE, vv.MATRIXTABLE} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE date = $1`, t), label); err != nil {
			return err
		}
	}
	_, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE label = $1`, MODELSTABLE), label)
	return err
}

func pgmodel(ctx context.Context, tx pgx.Tx, rec ModelRecord) error {
	const (
		UPS = `INSERT INTO %s (label, run_id, k, coherence, fingerprint, created, modeldata)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (label) DO UPDATE SET run_id = EXCLUDED.run_id, k = EXCLUDED.k,
				coherence = EXCLUDED.coherence, fingerprint = EXCLUDED.fingerprint,
				created = EXCLUDED.created, modeldata = EXCLUDED.modeldata`
	)
	_, err := tx.Exec(ctx, fmt.Sprintf(UPS, MODELSTABLE), rec.Label, rec.RunID, rec.K, rec.Coherence,
		rec.Fingerprint, rec.Created.Format(time.RFC3339), rec.Data)
	return err
}

func (s *PGStore) FetchModel(ctx context.Context, label string) (ModelRecord, error) {
	const (
		Q = `SELECT label, run_id, k, coherence, fingerprint, created, modeldata FROM %s WHERE label = $1`
	)
	var rec ModelRecord
	var created string
	err := s.pool.QueryRow(ctx, fmt.Sprintf(Q, MODELSTABLE), label).
		Scan(&rec.Label, &rec.RunID, &rec.K, &rec.Coherence, &rec.Fingerprint, &created, &rec.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, fmt.Errorf("model '%s': %w", label, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("FetchModel(): %w", err)
	}
	rec.Created, _ = time.Parse(time.RFC3339, created)
	return rec, nil
}

func (s *PGStore) FetchTopics(ctx context.Context, label string) ([]str.TopicRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(SELTOPICS, vv.TOPICSTABLE, "$1"), label)
	if err != nil {
		return nil, fmt.Errorf("FetchTopics(): %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (str.TopicRow, error) {
		var r str.TopicRow
		e := row.Scan(&r.Date, &r.Topic, &r.Prob, &r.DocID, &r.Tweet, &r.Susceptibility, &r.Severity, &r.Benefits, &r.Barriers)
		return r, e
	})
}

func (s *PGStore) FetchMatrix(ctx context.Context, label string) ([]str.MatrixRow, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(SELMATRIX, vv.MATRIXTABLE, "$1"), label)
	if err != nil {
		return nil, fmt.Errorf("FetchMatrix(): %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (str.MatrixRow, error) {
		var r str.MatrixRow
		e := row.Scan(&r.Date, &r.Topic, &r.Count, &r.Susceptibility, &r.Severity, &r.Benefits, &r.Barriers)
		return r, e
	})
}

func (s *PGStore) Windows(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(SELWINDOWS, vv.TOPICSTABLE))
	if err != nil {
		return nil, fmt.Errorf("Windows(): %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
