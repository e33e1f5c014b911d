//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import "strings"

//
// STRINGS and []RUNE
//

// Purgechars - drop any of the chars in the bad-string from the check-string
func Purgechars(bad string, checking string) string {
	rb := []rune(bad)
	reducer := make(map[rune]bool, len(rb))
	for _, r := range rb {
		reducer[r] = true
	}

	var stripped []rune
	for _, x := range []rune(checking) {
		if _, skip := reducer[x]; !skip {
			stripped = append(stripped, x)
		}
	}
	s := string(stripped)
	return s
}

// AvoidLongLines - insert breaks into a long string so that a table cell does not run off the page
func AvoidLongLines(untrimmed string, maxlen int) string {
	if maxlen <= 0 || len([]rune(untrimmed)) <= maxlen {
		return untrimmed
	}

	var sb strings.Builder
	ll := 0
	for i, w := range strings.Fields(untrimmed) {
		wl := len([]rune(w))
		if i > 0 {
			if ll+wl+1 > maxlen {
				sb.WriteString("\n")
				ll = 0
			} else {
				sb.WriteString(" ")
				ll += 1
			}
		}
		sb.WriteString(w)
		ll += wl
	}
	return sb.String()
}
