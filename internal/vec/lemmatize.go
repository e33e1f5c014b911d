//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import "strings"

//
// LEMMATIZER
//

// nouns are the default part of speech: only plurals are folded; "running" stays "running"

type suffixrule struct {
	suffix  string
	replace string
	minlen  int // the word must be at least this long for the rule to fire
}

var (
	// the first matching rule wins
	pluralrules = []suffixrule{
		{"sses", "ss", 5},
		{"ies", "y", 5},
		{"ches", "ch", 5},
		{"shes", "sh", 5},
		{"xes", "x", 4},
		{"zzes", "zz", 5},
		{"ss", "ss", 2},
		{"us", "us", 2},
		{"is", "is", 2},
		{"s", "", 4},
	}

	irregularplurals = map[string]string{
		"children": "child",
		"feet":     "foot",
		"geese":    "goose",
		"lives":    "life",
		"men":      "man",
		"mice":     "mouse",
		"people":   "people",
		"teeth":    "tooth",
		"wives":    "wife",
		"women":    "woman",
		"knives":   "knife",
		"leaves":   "leaf",
		"halves":   "half",
		"data":     "data",
		"criteria": "criterion",
		"viruses":  "virus",
	}

	// verb forms the plural rules would mangle: "does" is not "doe"
	thirdperson = map[string]string{
		"does":      "do",
		"goes":      "go",
		"undergoes": "undergo",
		"echoes":    "echo",
		"vetoes":    "veto",
	}

	// words that look plural but are not
	singularanyway = map[string]struct{}{
		"news": {}, "series": {}, "species": {}, "measles": {}, "diabetes": {}, "physics": {},
		"politics": {}, "economics": {}, "ethics": {}, "always": {}, "perhaps": {}, "towards": {},
		"afterwards": {}, "sometimes": {}, "whereas": {}, "covid": {}, "corona": {}, "texas": {},
		"sars": {}, "mers": {}, "aids": {}, "ebola": {},
	}
)

// Lemmatize - reduce a lowercase noun to its singular form
func Lemmatize(word string) string {
	if lm, ok := irregularplurals[word]; ok {
		return lm
	}
	if lm, ok := thirdperson[word]; ok {
		return lm
	}
	if _, ok := singularanyway[word]; ok {
		return word
	}
	for _, r := range pluralrules {
		if len(word) >= r.minlen && strings.HasSuffix(word, r.suffix) {
			return strings.TrimSuffix(word, r.suffix) + r.replace
		}
	}
	return word
}
