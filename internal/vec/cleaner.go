//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"github.com/e-gun/nlp"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"regexp"
	"strings"
	"unicode"
)

//
// TEXT PREPARATION
//

const (
	APOSTROPHES = "'’ʼ‘`"
)

var (
	urlpattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	handlepattern  = regexp.MustCompile(`@\w+`)
	entitypattern  = regexp.MustCompile(`&[a-z]+;`)
	hashtagpattern = regexp.MustCompile(`#(\w+)`)
)

// Cleaner - turns raw tweet text into the token list that the dictionary and the model see
type Cleaner struct {
	tok   nlp.Tokeniser
	stops map[string]struct{}
}

// NewCleaner - stop words are applied both before and after lemmatizing
func NewCleaner(stops []string) *Cleaner {
	return &Cleaner{
		tok:   nlp.NewTokeniser(stops...),
		stops: gen.ToSet(stops),
	}
}

// Clean - lowercase, fold accents, drop markup/punctuation/stop words, lemmatize
func (c *Cleaner) Clean(text string) []string {
	// [a] lowercase and strip the twitter furniture
	s := strings.ToLower(text)
	s = urlpattern.ReplaceAllString(s, " ")
	s = handlepattern.ReplaceAllString(s, " ")
	s = entitypattern.ReplaceAllString(s, " ")
	s = hashtagpattern.ReplaceAllString(s, "$1")

	// [b] "don't" -> "dont" so that the tokeniser does not leave "don" and "t" behind
	s = gen.Purgechars(APOSTROPHES, s)

	// [c] "naïve" -> "naive"
	s = FoldAccents(s)

	// [d] the tokeniser splits on anything that is not a letter, which also takes care of punctuation and digits
	toks := c.tok.Tokenise(s)

	// [e] lemmatize; a lemma can itself be a stop word
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		lm := Lemmatize(t)
		if _, stop := c.stops[lm]; stop {
			continue
		}
		out = append(out, lm)
	}
	return out
}

// FoldAccents - strip combining marks after canonical decomposition
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
