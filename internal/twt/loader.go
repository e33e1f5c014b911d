//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package twt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	Msg = lnch.Msg
)

const (
	COLID       = "read_tweet_id"
	COLCREATED  = "created_at"
	COLTEXT     = "read_text_clean2"
	COLSUSCEPT  = "Perceived_susceptibility"
	COLSEVERITY = "Perceived_severity"
	COLBENEFITS = "Perceived_benefits"
	COLBARRIERS = "Perceived_barriers"
)

var (
	ErrMissingColumn = errors.New("missing required column")
)

// LoadCSV - read the annotated tweets; every column but read_tweet_id is required
func LoadCSV(fn string) ([]str.Tweet, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tw, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	pr := message.NewPrinter(language.English)
	if len(tw) > 0 {
		Msg.FYI(pr.Sprintf("Dataset was loaded with %d rows", len(tw)))
	} else {
		Msg.WARN(fmt.Sprintf("Dataset '%s' is empty or did not load correctly", fn))
	}
	return tw, nil
}

// ReadCSV - parse csv rows into tweets; without an id column the (1-based) row number is the id
func ReadCSV(r io.Reader) ([]str.Tweet, error) {
	const (
		FAIL1 = "header: %w"
		FAIL2 = "row %d: %w"
		FAIL3 = "row %d column '%s': %w"
	)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf(FAIL1, err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	for _, need := range []string{COLCREATED, COLTEXT, COLSUSCEPT, COLSEVERITY, COLBENEFITS, COLBARRIERS} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, need)
		}
	}
	_, hasid := col[COLID]

	field := func(rec []string, name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var tweets []str.Tweet
	row := 0
	for {
		rec, e := cr.Read()
		if e == io.EOF {
			break
		}
		row++
		if e != nil {
			return nil, fmt.Errorf(FAIL2, row, e)
		}

		t := str.Tweet{
			ID:        int64(row),
			CreatedAt: field(rec, COLCREATED),
			Text:      field(rec, COLTEXT),
		}

		if hasid {
			if v := field(rec, COLID); v != "" {
				id, ie := parsecount(v)
				if ie != nil {
					return nil, fmt.Errorf(FAIL3, row, COLID, ie)
				}
				t.ID = int64(id)
			}
		}

		annot := []struct {
			name string
			dest *int
		}{
			{COLSUSCEPT, &t.Susceptibility},
			{COLSEVERITY, &t.Severity},
			{COLBENEFITS, &t.Benefits},
			{COLBARRIERS, &t.Barriers},
		}
		for _, a := range annot {
			n, ae := parsecount(field(rec, a.name))
			if ae != nil {
				return nil, fmt.Errorf(FAIL3, row, a.name, ae)
			}
			*a.dest = n
		}

		tweets = append(tweets, t)
	}
	return tweets, nil
}

// parsecount - "", "1", "1.0" are all acceptable; blanks count as zero
func parsecount(s string) (int, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}
