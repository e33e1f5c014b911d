//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"io"
	"os"
	"path/filepath"
)

type renderer interface {
	Render(w io.Writer) error
}

// WriteCoherenceChart - <dir>/<label>_k_topics.html
func WriteCoherenceChart(dir string, label string, ks []int, scores []float64) (string, error) {
	fn := filepath.Join(dir, fmt.Sprintf(vv.KCHARTTMPL, label))
	return fn, writechart(fn, CoherenceChart(label, ks, scores))
}

// WriteWordClouds - <dir>/word_cloud_<label>.html
func WriteWordClouds(dir string, label string, topics [][]lda.WeightedTerm) (string, error) {
	fn := filepath.Join(dir, fmt.Sprintf(vv.WORDCLOUDTMPL, label))
	return fn, writechart(fn, WordCloudPage(label, topics))
}

func writechart(fn string, r renderer) error {
	if err := os.MkdirAll(filepath.Dir(fn), vv.DIRPERMS); err != nil {
		return err
	}
	f, err := os.OpenFile(fn, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, vv.WRITEPERMS)
	if err != nil {
		return err
	}
	if err = r.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not render '%s': %w", fn, err)
	}
	Msg.TMI(fmt.Sprintf("wrote '%s'", fn))
	return f.Close()
}
