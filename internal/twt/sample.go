//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package twt

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"golang.org/x/exp/rand"
	"math"
	"sort"
)

// Sample - keep ceil(testSize * n) rows chosen at random; the survivors stay in their original order
func Sample(tweets []str.Tweet, testSize float64, seed uint64) []str.Tweet {
	if testSize <= 0 || testSize >= 1 || len(tweets) == 0 {
		return tweets
	}

	keep := int(math.Ceil(testSize * float64(len(tweets))))
	rnd := rand.New(rand.NewSource(seed))
	picked := rnd.Perm(len(tweets))[:keep]
	sort.Ints(picked)

	sampled := make([]str.Tweet, keep)
	for i, p := range picked {
		sampled[i] = tweets[p]
	}

	Msg.FYI(fmt.Sprintf("Dataframe sampled with %d of %d rows", keep, len(tweets)))
	return sampled
}

// RemoveDuplicates - drop any tweet whose text was already seen
func RemoveDuplicates(tweets []str.Tweet) []str.Tweet {
	seen := make(map[string]struct{}, len(tweets))
	var unique []str.Tweet
	for _, t := range tweets {
		if _, ok := seen[t.Text]; ok {
			continue
		}
		seen[t.Text] = struct{}{}
		unique = append(unique, t)
	}
	Msg.PEEK(fmt.Sprintf("%d duplicate rows were dropped", len(tweets)-len(unique)))
	return unique
}
