//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCoherenceChart(t *testing.T) {
	dir := t.TempDir()
	fn, err := WriteCoherenceChart(dir, "2020-01-01", []int{4, 5, 6}, []float64{0.31, 0.52, 0.47})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2020-01-01_k_topics.html"), fn)

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), "echarts")
	assert.Contains(t, string(b), "coherence")
}

func TestWriteWordClouds(t *testing.T) {
	topics := [][]lda.WeightedTerm{
		{{Term: "mask", Weight: 0.2}, {Term: "hand", Weight: 0.1}},
		{{Term: "vaccine", Weight: 0.3}},
	}
	fn, err := WriteWordClouds(filepath.Join(t.TempDir(), "static"), "2020-03-01", topics)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(fn, "word_cloud_2020-03-01.html"))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), "vaccine")
	assert.Contains(t, string(b), "wordCloud")
}

func TestMatrixSnippet(t *testing.T) {
	rows := []str.MatrixRow{
		{Date: "2020-01-01", Topic: 0, Count: 3, Annotations: str.Annotations{Susceptibility: 2}},
		{Date: "2020-01-01", Topic: 1, Count: 2, Annotations: str.Annotations{Barriers: 1}},
	}
	s, err := Snippet(MatrixChart("2020-01-01", rows))
	require.NoError(t, err)
	assert.Contains(t, s, "echarts.init")
	assert.Contains(t, s, "topic 1")
	assert.NotContains(t, s, "<html", "a snippet, not a page")
	assert.NotContains(t, s, "__f__")
}
