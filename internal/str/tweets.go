//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

// Annotations - the four health-belief survey columns
type Annotations struct {
	Susceptibility int
	Severity       int
	Benefits       int
	Barriers       int
}

// Add - column-wise sum
func (a Annotations) Add(b Annotations) Annotations {
	return Annotations{
		Susceptibility: a.Susceptibility + b.Susceptibility,
		Severity:       a.Severity + b.Severity,
		Benefits:       a.Benefits + b.Benefits,
		Barriers:       a.Barriers + b.Barriers,
	}
}

// Tweet - one row of the source csv
type Tweet struct {
	ID        int64
	CreatedAt string
	Date      time.Time // zero if CreatedAt could not be parsed
	Text      string
	Annotations
}

// TopicRow - one line of the "topics" table: a top-N tweet for a topic in a window
type TopicRow struct {
	Date  string // the window label
	Topic int
	Prob  float64
	DocID int64
	Tweet string
	Annotations
}

// MatrixRow - annotation sums and document count for one topic in a window
type MatrixRow struct {
	Date  string
	Topic int
	Count int
	Annotations
}
