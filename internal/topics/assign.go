//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vec"
)

// AssignTopics - one row per corpus document: its most probable topic and that probability, joined to the
// document by DocID
func AssignTopics(m lda.Model, c *vec.Corpus, docs []Document) ([]Assignment, error) {
	if m.Fingerprint() != c.Fingerprint() {
		return nil, &VocabularyMismatchError{Model: m.Fingerprint(), Corpus: c.Fingerprint()}
	}

	byid, err := indexdocs(docs)
	if err != nil {
		return nil, err
	}

	pp, err := m.Posteriors(c)
	if err != nil {
		return nil, err
	}
	if len(pp) != c.Len() {
		return nil, fmt.Errorf("the model returned %d posteriors for %d documents", len(pp), c.Len())
	}

	assigned := make([]Assignment, c.Len())
	for i, id := range c.IDs {
		d, ok := byid[id]
		if !ok {
			return nil, &UnknownDocError{ID: id}
		}

		top := gen.ArgMax(pp[i])
		if top < 0 {
			return nil, fmt.Errorf("empty posterior for document %d", id)
		}

		assigned[i] = Assignment{
			DocID:       id,
			Topic:       top,
			Prob:        pp[i][top],
			Text:        d.Text,
			Annotations: d.Annotations,
		}
	}
	return assigned, nil
}

// AggregateByTopic - per topic: the summed annotation columns and the number of documents; ascending topic order;
// topics that won no documents are absent
func AggregateByTopic(assigned []Assignment, label string) []str.MatrixRow {
	sums := make(map[int]str.MatrixRow)
	for _, a := range assigned {
		r := sums[a.Topic]
		r.Date = label
		r.Topic = a.Topic
		r.Count += 1
		r.Annotations = r.Annotations.Add(a.Annotations)
		sums[a.Topic] = r
	}

	rows := make([]str.MatrixRow, 0, len(sums))
	for _, t := range gen.SortedKeys(sums) {
		rows = append(rows, sums[t])
	}
	return rows
}
