//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/db"
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/viz"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/labstack/echo/v4"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	TOPWORDS = 10
)

// TopicSection - everything the results page shows for one topic
type TopicSection struct {
	Topic int
	str.MatrixRow
	Words string
	Rows  []str.TopicRow
}

// TopicsJS - the json twin of the results page
type TopicsJS struct {
	Label  string
	Topics []str.TopicRow
	Matrix []str.MatrixRow
}

func validlabel(label string) bool {
	_, err := time.Parse(vv.DATEFORMAT, label)
	return err == nil
}

// topwords - "mask, hand, wash, ..." for each topic of the stored model; nil if there is no model
func topwords(c echo.Context, label string) []string {
	rec, err := Store.FetchModel(c.Request().Context(), label)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			Msg.WARN(fmt.Sprintf("topwords(): %s", err.Error()))
		}
		return nil
	}

	art, err := lda.ReadArtifact(bytes.NewReader(rec.Data))
	if err != nil {
		Msg.WARN(fmt.Sprintf("topwords() could not read the model for %s: %s", label, err.Error()))
		return nil
	}

	ww := make([]string, art.K)
	for t := 0; t < art.K; t++ {
		var tt []string
		for _, w := range art.TopWords(t, TOPWORDS) {
			tt = append(tt, w.Term)
		}
		ww[t] = strings.Join(tt, ", ")
	}
	return ww
}

// sections - group the stored rows by topic
func sections(rows []str.TopicRow, matrix []str.MatrixRow, words []string) []TopicSection {
	bytopic := make(map[int]*TopicSection)
	get := func(t int) *TopicSection {
		if s, ok := bytopic[t]; ok {
			return s
		}
		s := &TopicSection{Topic: t}
		if t < len(words) {
			s.Words = words[t]
		}
		bytopic[t] = s
		return s
	}

	for _, m := range matrix {
		get(m.Topic).MatrixRow = m
	}
	for _, r := range rows {
		s := get(r.Topic)
		s.Rows = append(s.Rows, r)
	}

	ss := make([]TopicSection, 0, len(bytopic))
	for _, t := range gen.SortedKeys(bytopic) {
		ss = append(ss, *bytopic[t])
	}
	return ss
}

// staticif - "/static/fn" if the file was generated by a model run
func staticif(fn string) string {
	if _, err := os.Stat(filepath.Join(StaticDir, fn)); err != nil {
		return ""
	}
	return "/static/" + fn
}

// RtTopics - GET "/topics/:label"
func RtTopics(c echo.Context) error {
	label := c.Param("label")
	if !validlabel(label) {
		return echo.NewHTTPError(http.StatusNotFound, "no such window")
	}

	ctx := c.Request().Context()
	rows, err := Store.FetchTopics(ctx, label)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	matrix, err := Store.FetchMatrix(ctx, label)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(rows) == 0 && len(matrix) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("nothing has been modeled for %s", label))
	}

	var snippet template.HTML
	var js []string
	if len(matrix) > 0 {
		bar := viz.MatrixChart(label, matrix)
		if s, e := viz.Snippet(bar); e == nil {
			snippet = template.HTML(s)
			js = bar.GetAssets().JSAssets.Values
		} else {
			Msg.WARN(fmt.Sprintf("RtTopics() chart failed: %s", e.Error()))
		}
	}

	docs := 0
	for _, m := range matrix {
		docs += m.Count
	}

	subs := map[string]interface{}{
		"label":     label,
		"name":      vv.MYNAME,
		"sections":  sections(rows, matrix, topwords(c, label)),
		"documents": docs,
		"chart":     snippet,
		"js":        js,
		"kchart":    staticif(fmt.Sprintf(vv.KCHARTTMPL, label)),
		"clouds":    staticif(fmt.Sprintf(vv.WORDCLOUDTMPL, label)),
	}

	var b bytes.Buffer
	if err = pages.ExecuteTemplate(&b, "topics.html", subs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, b.String())
}

// RtJSTopics - GET "/get/json/topics/:label"
func RtJSTopics(c echo.Context) error {
	label := c.Param("label")
	if !validlabel(label) {
		return echo.NewHTTPError(http.StatusNotFound, "no such window")
	}

	ctx := c.Request().Context()
	var jso TopicsJS
	var err error
	jso.Label = label
	if jso.Topics, err = Store.FetchTopics(ctx, label); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if jso.Matrix, err = Store.FetchMatrix(ctx, label); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return gen.JSONresponse(c, jso)
}
