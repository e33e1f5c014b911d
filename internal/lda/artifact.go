//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	GZ = gzip.BestSpeed
)

// Artifact - what is written to disk (and to the database) for a trained model
type Artifact struct {
	RunID       string
	Created     time.Time
	K           int
	Seed        uint64
	Method      string
	Coherence   float64 // the last score computed for the model; 0 if never scored
	Terms       []string
	Fingerprint string
	Topics      [][]float64 // k x len(Terms)
}

// Write - gzipped json
func (a Artifact) Write(w io.Writer) error {
	eb, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("could not marshal model %s: %w", a.RunID, err)
	}

	zw, err := gzip.NewWriterLevel(w, GZ)
	if err != nil {
		return err
	}
	if _, err = zw.Write(eb); err != nil {
		return err
	}
	return zw.Close()
}

// Bytes - Write() into a buffer
func (a Artifact) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TopWords - the n heaviest words of a topic
func (a Artifact) TopWords(topic int, n int) []WeightedTerm {
	if topic < 0 || topic >= len(a.Topics) {
		return nil
	}
	return topweighted(a.Topics[topic], a.Terms, n)
}

// ReadArtifact - the inverse of Artifact.Write()
func ReadArtifact(r io.Reader) (Artifact, error) {
	var a Artifact

	// the data is zipped and needs unzipping
	zr, err := gzip.NewReader(r)
	if err != nil {
		return a, err
	}
	decompr, err := io.ReadAll(zr)
	if err != nil {
		return a, err
	}
	if err = zr.Close(); err != nil {
		return a, err
	}

	err = json.Unmarshal(decompr, &a)
	return a, err
}

// ModelPath - <modeldir>/lda_model_<label>.json.gz
func ModelPath(modeldir string, label string) string {
	return filepath.Join(modeldir, fmt.Sprintf(vv.MODELFILETMPL, label))
}

// SaveModelFile - write the model into modeldir; returns the path
func SaveModelFile(m Model, modeldir string, label string) (string, error) {
	if err := os.MkdirAll(modeldir, vv.DIRPERMS); err != nil {
		return "", err
	}

	fn := ModelPath(modeldir, label)
	f, err := os.Create(fn)
	if err != nil {
		return "", err
	}

	if err = m.Save(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("could not save model to '%s': %w", fn, err)
	}
	return fn, f.Close()
}

// LoadArtifactFile - read a model written by SaveModelFile()
func LoadArtifactFile(fn string) (Artifact, error) {
	f, err := os.Open(fn)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()
	return ReadArtifact(f)
}
