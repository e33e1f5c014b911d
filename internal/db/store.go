//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"time"
)

var (
	Msg = lnch.Msg
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownProvider = errors.New("unknown sql provider")
)

// ModelRecord - a gzipped model artifact as kept in the models table
type ModelRecord struct {
	Label       string
	RunID       string
	K           int
	Coherence   float64
	Fingerprint string
	Created     time.Time
	Data        []byte
}

// WindowRecord - everything one model run stores for a window
type WindowRecord struct {
	Label  string
	Topics []str.TopicRow
	Matrix []str.MatrixRow
	Model  ModelRecord
}

// Store - where the results of a model run end up and where the web pages read them from
type Store interface {
	InitSchema(ctx context.Context) error
	AppendTweets(ctx context.Context, tweets []str.Tweet) (int, error)
	AppendTopics(ctx context.Context, rows []str.TopicRow) error
	AppendMatrix(ctx context.Context, rows []str.MatrixRow) error
	ClearWindow(ctx context.Context, label string) error
	StoreModel(ctx context.Context, rec ModelRecord) error
	ReplaceWindow(ctx context.Context, w WindowRecord) error
	FetchModel(ctx context.Context, label string) (ModelRecord, error)
	FetchTopics(ctx context.Context, label string) ([]str.TopicRow, error)
	FetchMatrix(ctx context.Context, label string) ([]str.MatrixRow, error)
	Windows(ctx context.Context) ([]string, error)
	Close()
}

// Open - pick the backend named by cfg.SQLProvider
func Open(ctx context.Context, cfg str.CurrentConfiguration) (Store, error) {
	switch cfg.SQLProvider {
	case PGSQL:
		return NewPGStore(ctx, cfg.PGLogin)
	case MODERNC, MATTN:
		return NewSQLStore(ctx, cfg.SQLProvider, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownProvider, cfg.SQLProvider)
	}
}
