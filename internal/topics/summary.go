//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"slices"
)

// TopDocuments - the n most probable documents of every topic; topics in ascending order, documents in
// descending probability; a topic with fewer than n documents yields all of them
func TopDocuments(assigned []Assignment, n int, label string) ([]str.TopicRow, error) {
	if n <= 0 {
		return nil, ErrNonPositiveTopN
	}

	bytopic := make(map[int][]Assignment)
	for _, a := range assigned {
		bytopic[a.Topic] = append(bytopic[a.Topic], a)
	}

	var rows []str.TopicRow
	for _, t := range gen.SortedKeys(bytopic) {
		aa := bytopic[t]
		// stable: equal probabilities keep their corpus order
		slices.SortStableFunc(aa, func(a, b Assignment) int {
			switch {
			case a.Prob > b.Prob:
				return -1
			case a.Prob < b.Prob:
				return 1
			default:
				return 0
			}
		})
		if len(aa) > n {
			aa = aa[:n]
		}
		for _, a := range aa {
			rows = append(rows, str.TopicRow{
				Date:        label,
				Topic:       a.Topic,
				Prob:        a.Prob,
				DocID:       a.DocID,
				Tweet:       a.Text,
				Annotations: a.Annotations,
			})
		}
	}
	return rows, nil
}
