//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/str"
)

var (
	Msg = lnch.Msg
)

// Document - one cleaned tweet
type Document struct {
	ID     int64
	Text   string
	Tokens []string
	str.Annotations
}

// Candidate - the score of the model trained with K topics
type Candidate struct {
	K     int
	Score float64
}

// Assignment - a document and its dominant topic
type Assignment struct {
	DocID int64
	Topic int
	Prob  float64 // the maximum of the document's posterior
	Text  string
	str.Annotations
}

// indexdocs - DocID -> Document; an id may not appear twice
func indexdocs(docs []Document) (map[int64]Document, error) {
	byid := make(map[int64]Document, len(docs))
	for _, d := range docs {
		if _, dup := byid[d.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDoc, d.ID)
		}
		byid[d.ID] = d
	}
	return byid, nil
}
