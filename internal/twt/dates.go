//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package twt

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"strings"
	"time"
)

// ParseCreated - "Wed Jan 01 12:00:00 +0000 2020" -> 2020-01-01; the month and day are read and the year is
// always vv.FIXEDYEAR; the zero time is returned if the month and day do not parse
func ParseCreated(created string) time.Time {
	const (
		LAYOUT = "Jan 02 2006"
	)
	ff := strings.Fields(created)
	if len(ff) < 3 {
		return time.Time{}
	}
	d, err := time.Parse(LAYOUT, fmt.Sprintf("%s %s %d", ff[1], ff[2], vv.FIXEDYEAR))
	if err != nil {
		return time.Time{}
	}
	return d
}

// FormatDates - fill in Tweet.Date from Tweet.CreatedAt
func FormatDates(tweets []str.Tweet) []str.Tweet {
	bad := 0
	for i := range tweets {
		tweets[i].Date = ParseCreated(tweets[i].CreatedAt)
		if tweets[i].Date.IsZero() {
			bad++
		}
	}
	if bad > 0 {
		Msg.PEEK(fmt.Sprintf("FormatDates(): %d rows have no usable date", bad))
	}
	return tweets
}

// Timeframe - the tweets dated in [start, start+days); start is "2006-01-02"
func Timeframe(tweets []str.Tweet, start string, days int) ([]str.Tweet, error) {
	from, err := time.Parse(vv.DATEFORMAT, start)
	if err != nil {
		return nil, fmt.Errorf("bad window start '%s': %w", start, err)
	}
	if days <= 0 {
		days = vv.WINDOWDAYS
	}
	until := from.AddDate(0, 0, days)

	var subset []str.Tweet
	for _, t := range tweets {
		if t.Date.IsZero() {
			continue
		}
		if !t.Date.Before(from) && t.Date.Before(until) {
			subset = append(subset, t)
		}
	}
	Msg.FYI(fmt.Sprintf("Length of time sliced dataframe for %s is %d rows", start, len(subset)))
	return subset, nil
}
