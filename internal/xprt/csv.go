//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xprt

import (
	"encoding/csv"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"io"
	"strconv"
)

var (
	matrixheader = []string{"topic_num", "Perceived_susceptibility", "Perceived_severity", "Perceived_benefits",
		"Perceived_barriers", "count"}
	topicsheader = []string{"date", "topic_num", "prob", "read_tweet_id", "tweet", "Perceived_susceptibility",
		"Perceived_severity", "Perceived_benefits", "Perceived_barriers"}
)

// WriteMatrixCSV - one line per topic: the annotation sums and the number of documents
func WriteMatrixCSV(w io.Writer, rows []str.MatrixRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matrixheader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Topic),
			strconv.Itoa(r.Susceptibility),
			strconv.Itoa(r.Severity),
			strconv.Itoa(r.Benefits),
			strconv.Itoa(r.Barriers),
			strconv.Itoa(r.Count),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTopicsCSV - the top tweets (or every document) with its topic and probability
func WriteTopicsCSV(w io.Writer, rows []str.TopicRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(topicsheader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date,
			strconv.Itoa(r.Topic),
			strconv.FormatFloat(r.Prob, 'f', -1, 64),
			strconv.FormatInt(r.DocID, 10),
			r.Tweet,
			strconv.Itoa(r.Susceptibility),
			strconv.Itoa(r.Severity),
			strconv.Itoa(r.Benefits),
			strconv.Itoa(r.Barriers),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
