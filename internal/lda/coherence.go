//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"fmt"
	"gonum.org/v1/gonum/floats"
	"math"
)

//
// TOPIC COHERENCE
//

const (
	CV         = "c_v"
	UMASS      = "u_mass"
	COHEPSILON = 1e-12
)

// cooccurrence - boolean document counts for a fixed set of term ids; a tweet is short enough to be its own window
type cooccurrence struct {
	ndocs  int
	single map[int]int
	joint  map[[2]int]int
}

func pairkey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// countcooccurrence - how many documents hold each term and each pair of terms among the ids in "relevant"
func countcooccurrence(docs [][]int, relevant map[int]struct{}) cooccurrence {
	cc := cooccurrence{
		ndocs:  len(docs),
		single: make(map[int]int),
		joint:  make(map[[2]int]int),
	}

	for _, d := range docs {
		present := make(map[int]struct{})
		for _, id := range d {
			if _, ok := relevant[id]; ok {
				present[id] = struct{}{}
			}
		}
		ids := make([]int, 0, len(present))
		for id := range present {
			ids = append(ids, id)
			cc.single[id] += 1
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				cc.joint[pairkey(ids[i], ids[j])] += 1
			}
		}
	}
	return cc
}

func (cc cooccurrence) count(a, b int) int {
	if a == b {
		return cc.single[a]
	}
	return cc.joint[pairkey(a, b)]
}

// npmi - normalized pointwise mutual information of two terms; range [-1, 1]
func (cc cooccurrence) npmi(a, b int) float64 {
	n := float64(cc.ndocs)
	pa := float64(cc.single[a]) / n
	pb := float64(cc.single[b]) / n
	if pa == 0 || pb == 0 {
		return 0
	}
	pab := float64(cc.count(a, b))/n + COHEPSILON
	denom := -math.Log(pab)
	if denom == 0 {
		return 1
	}
	return math.Log(pab/(pa*pb)) / denom
}

// logcondprob - log P(a|b) smoothed by COHEPSILON
func (cc cooccurrence) logcondprob(a, b int) float64 {
	n := float64(cc.ndocs)
	pb := float64(cc.single[b]) / n
	if pb == 0 {
		return 0
	}
	pab := float64(cc.count(a, b)) / n
	return math.Log((pab + COHEPSILON) / pb)
}

// TopicCoherence - the mean coherence of the topics; each topic is a list of term ids, most important first
func TopicCoherence(method string, topics [][]int, docs [][]int) (float64, error) {
	if len(topics) == 0 || len(docs) == 0 {
		return 0, nil
	}

	relevant := make(map[int]struct{})
	for _, t := range topics {
		for _, id := range t {
			relevant[id] = struct{}{}
		}
	}
	cc := countcooccurrence(docs, relevant)

	var scorer func(topic []int) float64
	switch method {
	case CV:
		scorer = cc.cv
	case UMASS:
		scorer = cc.umass
	default:
		return 0, fmt.Errorf("unknown coherence method '%s'", method)
	}

	scores := make([]float64, len(topics))
	for i, t := range topics {
		scores[i] = scorer(t)
	}
	return floats.Sum(scores) / float64(len(scores)), nil
}

// cv - one-set segmentation, npmi context vectors, cosine similarity against the whole topic
func (cc cooccurrence) cv(topic []int) float64 {
	if len(topic) == 0 {
		return 0
	}

	// [a] one npmi context vector per word
	vectors := make([][]float64, len(topic))
	for i, wi := range topic {
		vectors[i] = make([]float64, len(topic))
		for j, wj := range topic {
			vectors[i][j] = cc.npmi(wi, wj)
		}
	}

	// [b] the topic vector is the sum of its words' vectors
	whole := make([]float64, len(topic))
	for _, v := range vectors {
		floats.Add(whole, v)
	}

	// [c] mean cosine similarity
	sims := make([]float64, len(topic))
	for i, v := range vectors {
		sims[i] = cosine(v, whole)
	}
	return floats.Sum(sims) / float64(len(sims))
}

// umass - each word conditioned on every word ranked above it
func (cc cooccurrence) umass(topic []int) float64 {
	var scores []float64
	for i := 1; i < len(topic); i++ {
		for j := 0; j < i; j++ {
			scores = append(scores, cc.logcondprob(topic[i], topic[j]))
		}
	}
	if len(scores) == 0 {
		return 0
	}
	return floats.Sum(scores) / float64(len(scores))
}

func cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
