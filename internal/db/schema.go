//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
)

const (
	PGSQL   = "pgsql"
	MODERNC = "sqlite"  // modernc.org/sqlite, pure go
	MATTN   = "sqlite3" // github.com/mattn/go-sqlite3, cgo

	TWEETSTABLE = "tweets"
	MODELSTABLE = "models"
)

// the serial key is spelled differently by the two dialects; everything else is shared
const (
	PGSERIAL  = "SERIAL PRIMARY KEY"
	SQLSERIAL = "INTEGER PRIMARY KEY AUTOINCREMENT"
	PGBLOB    = "bytea"
	SQLBLOB   = "BLOB"

	CREATETOPICS = `
		CREATE TABLE IF NOT EXISTS %s (
			read_tweet_id %s,
			date character varying(10),
			topic_num integer,
			prob double precision,
			doc_id bigint,
			tweet text,
			perceived_susceptibility integer,
			perceived_severity integer,
			perceived_benefits integer,
			perceived_barriers integer
		)`
	CREATEMATRIX = `
		CREATE TABLE IF NOT EXISTS %s (
			date character varying(10),
			topic_num integer,
			doc_count integer,
			perceived_susceptibility integer,
			perceived_severity integer,
			perceived_benefits integer,
			perceived_barriers integer,
			PRIMARY KEY (date, topic_num)
		)`
	CREATETWEETS = `
		CREATE TABLE IF NOT EXISTS %s (
			read_tweet_id bigint PRIMARY KEY,
			created_at character varying(40),
			read_text_clean2 text,
			perceived_susceptibility integer,
			perceived_severity integer,
			perceived_benefits integer,
			perceived_barriers integer
		)`
	CREATEMODELS = `
		CREATE TABLE IF NOT EXISTS %s (
			label character varying(10) PRIMARY KEY,
			run_id character varying(36),
			k integer,
			coherence double precision,
			fingerprint character varying(32),
			created character varying(40),
			modeldata %s
		)`
	CREATEIDX = `CREATE INDEX IF NOT EXISTS %s_date_idx ON %s (date)`
)

// schema - the CREATE statements for one dialect
func schema(serial string, blob string) []string {
	return []string{
		fmt.Sprintf(CREATETOPICS, vv.TOPICSTABLE, serial),
		fmt.Sprintf(CREATEIDX, vv.TOPICSTABLE, vv.TOPICSTABLE),
		fmt.Sprintf(CREATEMATRIX, vv.MATRIXTABLE),
		fmt.Sprintf(CREATETWEETS, TWEETSTABLE),
		fmt.Sprintf(CREATEMODELS, MODELSTABLE, blob),
	}
}

// %s = table, %s = the dialect's first placeholder
const (
	SELTOPICS = `SELECT date, topic_num, prob, doc_id, tweet, perceived_susceptibility, perceived_severity,
			perceived_benefits, perceived_barriers FROM %s WHERE date = %s ORDER BY topic_num, prob DESC, read_tweet_id`
	SELMATRIX = `SELECT date, topic_num, doc_count, perceived_susceptibility, perceived_severity,
			perceived_benefits, perceived_barriers FROM %s WHERE date = %s ORDER BY topic_num`
	SELWINDOWS = `SELECT DISTINCT date FROM %s ORDER BY date`
)
