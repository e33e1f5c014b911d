//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueKeepsFirstAppearance(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Nil(t, Unique([]int{}))
}

func TestArgMaxTakesFirstOfTies(t *testing.T) {
	assert.Equal(t, -1, ArgMax([]float64{}))
	assert.Equal(t, 1, ArgMax([]float64{0.2, 0.7, 0.7, 0.1}))
	assert.Equal(t, 0, ArgMax([]int{3}))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"march": 1, "january": 2, "april": 3}
	assert.Equal(t, []string{"april", "january", "march"}, SortedKeys(m))
}

func TestPurgechars(t *testing.T) {
	assert.Equal(t, "dont", Purgechars("'’", "don’t"))
}

func TestAvoidLongLines(t *testing.T) {
	assert.Equal(t, "short", AvoidLongLines("short", 20))
	assert.Equal(t, "aaa bbb\nccc", AvoidLongLines("aaa bbb ccc", 7))
}
