//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"crypto/md5"
	"fmt"
	"slices"
	"strings"
)

// TermCount - one entry of a bag of words
type TermCount struct {
	ID    int
	Count int
}

// Bow - a document as (term id, count) pairs in ascending id order
type Bow []TermCount

// Dictionary - a bijection between terms and the dense ids 0..n-1
type Dictionary struct {
	terms []string
	ids   map[string]int
}

// NewDictionary - ids are handed out document by document; the new terms of any one document are added in sorted order
func NewDictionary(docs [][]string) *Dictionary {
	d := &Dictionary{ids: make(map[string]int)}
	for _, doc := range docs {
		d.add(doc)
	}
	return d
}

func (d *Dictionary) add(doc []string) {
	seen := make(map[string]struct{}, len(doc))
	var fresh []string
	for _, w := range doc {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		if _, known := d.ids[w]; !known {
			fresh = append(fresh, w)
		}
	}

	slices.Sort(fresh)
	for _, w := range fresh {
		d.ids[w] = len(d.terms)
		d.terms = append(d.terms, w)
	}
}

// Len - the number of distinct terms
func (d *Dictionary) Len() int {
	return len(d.terms)
}

// ID - the id of a term
func (d *Dictionary) ID(term string) (int, bool) {
	id, ok := d.ids[term]
	return id, ok
}

// Terms - the vocabulary in id order
func (d *Dictionary) Terms() []string {
	return slices.Clone(d.terms)
}

// Doc2Bow - count the known terms of a document; unknown terms are ignored
func (d *Dictionary) Doc2Bow(doc []string) Bow {
	counts := make(map[int]int)
	for _, w := range doc {
		if id, ok := d.ids[w]; ok {
			counts[id] += 1
		}
	}

	bow := make(Bow, 0, len(counts))
	for id, c := range counts {
		bow = append(bow, TermCount{ID: id, Count: c})
	}
	slices.SortFunc(bow, func(a, b TermCount) int { return a.ID - b.ID })
	return bow
}

// Fingerprint - md5 of the ordered vocabulary; two dictionaries agree on every id iff their fingerprints match
func (d *Dictionary) Fingerprint() string {
	return TermsFingerprint(d.terms)
}

// TermsFingerprint - see Dictionary.Fingerprint()
func TermsFingerprint(terms []string) string {
	f := []byte(strings.Join(terms, "\x00"))
	return fmt.Sprintf("%x", md5.Sum(f))
}
