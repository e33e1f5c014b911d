//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xprt

import (
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/parquet-go/parquet-go"
	"io"
	"os"
)

// MatrixRecord - parquet layout of a str.MatrixRow
type MatrixRecord struct {
	Date           string `parquet:"date"`
	Topic          int32  `parquet:"topic_num"`
	Count          int32  `parquet:"count"`
	Susceptibility int32  `parquet:"perceived_susceptibility"`
	Severity       int32  `parquet:"perceived_severity"`
	Benefits       int32  `parquet:"perceived_benefits"`
	Barriers       int32  `parquet:"perceived_barriers"`
}

// TopicRecord - parquet layout of a str.TopicRow
type TopicRecord struct {
	Date           string  `parquet:"date"`
	Topic          int32   `parquet:"topic_num"`
	Prob           float64 `parquet:"prob"`
	DocID          int64   `parquet:"read_tweet_id"`
	Tweet          string  `parquet:"tweet"`
	Susceptibility int32   `parquet:"perceived_susceptibility"`
	Severity       int32   `parquet:"perceived_severity"`
	Benefits       int32   `parquet:"perceived_benefits"`
	Barriers       int32   `parquet:"perceived_barriers"`
}

func matrixrecord(r str.MatrixRow) MatrixRecord {
	return MatrixRecord{
		Date:           r.Date,
		Topic:          int32(r.Topic),
		Count:          int32(r.Count),
		Susceptibility: int32(r.Susceptibility),
		Severity:       int32(r.Severity),
		Benefits:       int32(r.Benefits),
		Barriers:       int32(r.Barriers),
	}
}

func topicrecord(r str.TopicRow) TopicRecord {
	return TopicRecord{
		Date:           r.Date,
		Topic:          int32(r.Topic),
		Prob:           r.Prob,
		DocID:          r.DocID,
		Tweet:          r.Tweet,
		Susceptibility: int32(r.Susceptibility),
		Severity:       int32(r.Severity),
		Benefits:       int32(r.Benefits),
		Barriers:       int32(r.Barriers),
	}
}

// TopicRow - back from parquet
func (t TopicRecord) TopicRow() str.TopicRow {
	return str.TopicRow{
		Date:  t.Date,
		Topic: int(t.Topic),
		Prob:  t.Prob,
		DocID: t.DocID,
		Tweet: t.Tweet,
		Annotations: str.Annotations{
			Susceptibility: int(t.Susceptibility),
			Severity:       int(t.Severity),
			Benefits:       int(t.Benefits),
			Barriers:       int(t.Barriers),
		},
	}
}

// writeparquet - a single writer so that the file gets exactly one footer
func writeparquet[T any](w io.Writer, recs []T) error {
	pw := parquet.NewGenericWriter[T](w, parquet.Compression(&parquet.Zstd))
	if _, err := pw.Write(recs); err != nil {
		_ = pw.Close()
		return err
	}
	return pw.Close()
}

// WriteMatrixParquet - zstd parquet twin of WriteMatrixCSV
func WriteMatrixParquet(w io.Writer, rows []str.MatrixRow) error {
	recs := make([]MatrixRecord, len(rows))
	for i := range rows {
		recs[i] = matrixrecord(rows[i])
	}
	return writeparquet(w, recs)
}

// WriteTopicsParquet - zstd parquet twin of WriteTopicsCSV
func WriteTopicsParquet(w io.Writer, rows []str.TopicRow) error {
	recs := make([]TopicRecord, len(rows))
	for i := range rows {
		recs[i] = topicrecord(rows[i])
	}
	return writeparquet(w, recs)
}

// ReadTopicsParquet - load a file written by WriteTopicsParquet
func ReadTopicsParquet(fn string) ([]str.TopicRow, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, err
	}

	pr := parquet.NewGenericReader[TopicRecord](pf)
	defer pr.Close()

	recs := make([]TopicRecord, pf.NumRows())
	n, err := pr.Read(recs)
	if err != nil && err != io.EOF {
		return nil, err
	}

	rows := make([]str.TopicRow, n)
	for i := 0; i < n; i++ {
		rows[i] = recs[i].TopicRow()
	}
	return rows, nil
}
