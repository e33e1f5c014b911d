//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"encoding/json"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"os"
	"strconv"
)

//
// STOPWORDS
//

const (
	MAXNUMBERSTOP = 9999 // "0" through "9998" are dropped
)

var (
	// English - function words; apostrophes are gone before the list is consulted: "don't" arrives as "dont"
	English = []string{"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "youre", "youve",
		"youll", "youd", "your", "yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "shes",
		"her", "hers", "herself", "it", "its", "itself", "they", "them", "their", "theirs", "themselves", "what",
		"which", "who", "whom", "this", "that", "thatll", "these", "those", "am", "is", "are", "was", "were", "be",
		"been", "being", "have", "has", "had", "having", "do", "does", "did", "doing", "an", "the", "and", "but",
		"if", "or", "because", "as", "until", "while", "of", "at", "by", "for", "with", "about", "against",
		"between", "into", "through", "during", "before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further", "then", "once", "here", "there", "when",
		"where", "why", "how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "such", "no",
		"nor", "not", "only", "own", "same", "so", "than", "too", "very", "can", "will", "just", "don", "dont",
		"should", "shouldve", "now", "ll", "re", "ve", "ain", "aren", "arent", "couldn", "couldnt", "didn",
		"didnt", "doesn", "doesnt", "hadn", "hadnt", "hasn", "hasnt", "haven", "havent", "isn", "isnt", "ma",
		"mightn", "mightnt", "mustn", "mustnt", "needn", "neednt", "shan", "shant", "shouldn", "shouldnt", "wasn",
		"wasnt", "weren", "werent", "won", "wont", "wouldn", "wouldnt", "im", "ive", "us"}
	// TwitterExtra - markup that survives the upstream cleaning of the tweets
	TwitterExtra = []string{"rt", "amp", "via", "http", "https", "co", "www", "com"}
)

// DefaultStops - English + Twitter leftovers + every single letter + the numbers below MAXNUMBERSTOP
func DefaultStops() []string {
	stops := make([]string, 0, len(English)+len(TwitterExtra)+26+MAXNUMBERSTOP)
	stops = append(stops, English...)
	stops = append(stops, TwitterExtra...)
	for r := 'a'; r <= 'z'; r++ {
		stops = append(stops, string(r))
	}
	for i := 0; i < MAXNUMBERSTOP; i++ {
		stops = append(stops, strconv.Itoa(i))
	}
	return stops
}

// ReadStopFile - a JSON list of additional stop words
func ReadStopFile(fn string) ([]string, error) {
	const (
		ERR1 = "ReadStopFile() failed to parse '%s': %w"
	)

	loadedcfg, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer loadedcfg.Close()

	var stp []string
	decoderc := json.NewDecoder(loadedcfg)
	if err = decoderc.Decode(&stp); err != nil {
		return nil, fmt.Errorf(ERR1, fn, err)
	}
	return stp, nil
}

// StopSet - DefaultStops() plus any extras, as a set
func StopSet(extra ...string) map[string]struct{} {
	return gen.ToSet(append(DefaultStops(), extra...))
}
