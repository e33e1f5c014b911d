//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package xprt

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"io"
	"os"
	"path/filepath"
)

var (
	Msg = lnch.Msg
)

// WindowExport - what a model run produced for one window
type WindowExport struct {
	Label     string
	Matrix    []str.MatrixRow
	TopTweets []str.TopicRow
	Documents []str.TopicRow // every document with its dominant topic
}

// ExportWindow - write the csv files and their parquet twins into dir; returns the paths written
func ExportWindow(dir string, we WindowExport) ([]string, error) {
	const (
		FAIL = "ExportWindow() could not write '%s': %w"
	)

	if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return nil, err
	}

	type job struct {
		fn string
		wf func(io.Writer) error
	}

	mxbase := filepath.Join(dir, fmt.Sprintf(vv.MATRIXFILETMPL, we.Label))
	ttbase := filepath.Join(dir, fmt.Sprintf(vv.TOPTWEETSTMPL, we.Label))

	jobs := []job{
		{mxbase + ".csv", func(w io.Writer) error { return WriteMatrixCSV(w, we.Matrix) }},
		{mxbase + ".parquet", func(w io.Writer) error { return WriteMatrixParquet(w, we.Matrix) }},
		{ttbase + ".csv", func(w io.Writer) error { return WriteTopicsCSV(w, we.TopTweets) }},
		{ttbase + ".parquet", func(w io.Writer) error { return WriteTopicsParquet(w, we.TopTweets) }},
	}

	if len(we.Documents) > 0 {
		dtbase := filepath.Join(dir, fmt.Sprintf(vv.DOCTOPICSTMPL, we.Label))
		jobs = append(jobs, job{dtbase + ".parquet", func(w io.Writer) error { return WriteTopicsParquet(w, we.Documents) }})
	}

	var written []string
	for _, j := range jobs {
		if err := writefile(j.fn, j.wf); err != nil {
			return written, fmt.Errorf(FAIL, j.fn, err)
		}
		written = append(written, j.fn)
		Msg.TMI(fmt.Sprintf("ExportWindow() wrote '%s'", j.fn))
	}
	return written, nil
}

func writefile(fn string, wf func(io.Writer) error) error {
	f, err := os.OpenFile(fn, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, vv.WRITEPERMS)
	if err != nil {
		return err
	}
	if err = wf(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
