//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"errors"
	"fmt"
	"github.com/e-gun/sparse"
	"slices"
)

var (
	ErrEmptyVocabulary = errors.New("the documents share no usable terms")
	ErrMisalignedIDs   = errors.New("document ids and documents differ in length")
)

// Corpus - the bag-of-words view of a document collection
type Corpus struct {
	Dict *Dictionary
	IDs  []int64 // the DocID of each document
	Bows []Bow   // index-aligned with IDs
}

// NewCorpus - bag every document against the dictionary
func NewCorpus(dict *Dictionary, ids []int64, docs [][]string) (*Corpus, error) {
	if len(ids) != len(docs) {
		return nil, fmt.Errorf("%w: %d ids for %d documents", ErrMisalignedIDs, len(ids), len(docs))
	}
	if dict.Len() == 0 {
		return nil, ErrEmptyVocabulary
	}

	c := &Corpus{
		Dict: dict,
		IDs:  ids,
		Bows: make([]Bow, len(docs)),
	}
	for i, d := range docs {
		c.Bows[i] = dict.Doc2Bow(d)
	}
	return c, nil
}

// BuildCorpus - NewDictionary() + NewCorpus() in one go
func BuildCorpus(ids []int64, docs [][]string) (*Corpus, error) {
	return NewCorpus(NewDictionary(docs), ids, docs)
}

// Len - the number of documents
func (c *Corpus) Len() int {
	return len(c.Bows)
}

// Fingerprint - the dictionary fingerprint
func (c *Corpus) Fingerprint() string {
	return c.Dict.Fingerprint()
}

// Matrix - a terms x documents sparse count matrix
func (c *Corpus) Matrix() *sparse.CSC {
	return BowsToMatrix(c.Dict.Len(), c.Bows)
}

// BowsToMatrix - nterms x len(bows); ids at or beyond nterms are dropped
// every column lists its term ids in ascending order so that LDA sees the counts in the same order on every call
func BowsToMatrix(nterms int, bows []Bow) *sparse.CSC {
	indptr := make([]int, len(bows)+1)
	var ind []int
	var data []float64
	for j, bow := range bows {
		sorted := slices.Clone(bow)
		slices.SortFunc(sorted, func(a, b TermCount) int { return a.ID - b.ID })
		for _, tc := range sorted {
			if tc.ID < 0 || tc.ID >= nterms || tc.Count == 0 {
				continue
			}
			ind = append(ind, tc.ID)
			data = append(data, float64(tc.Count))
		}
		indptr[j+1] = len(ind)
	}
	return sparse.NewCSC(nterms, len(bows), indptr, ind, data)
}
