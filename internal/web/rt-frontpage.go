//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/labstack/echo/v4"
	"net/http"
	"strings"
	"time"
)

const (
	MONTHKEY  = "2006-01"
	MONTHNAME = "January 2006"
	SELECTOR  = "selectDate"
)

// MonthChoice - one entry in the calendar selector
type MonthChoice struct {
	Key     string // "2020-01"
	Name    string // "January 2020"
	Windows []string
}

// months - group the stored window labels by calendar month; labels that are not dates are skipped
func months(windows []string) []MonthChoice {
	var mm []MonthChoice
	idx := make(map[string]int)
	for _, w := range windows {
		d, err := time.Parse(vv.DATEFORMAT, w)
		if err != nil {
			continue
		}
		k := d.Format(MONTHKEY)
		i, ok := idx[k]
		if !ok {
			mm = append(mm, MonthChoice{Key: k, Name: d.Format(MONTHNAME)})
			i = len(mm) - 1
			idx[k] = i
		}
		mm[i].Windows = append(mm[i].Windows, w)
	}
	return mm
}

// resolveselection - map what the selector sent to a window label; "" if nothing matches
func resolveselection(sel string, windows []string) string {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return ""
	}
	for _, w := range windows {
		if w == sel {
			return w
		}
	}
	for _, m := range months(windows) {
		short := strings.Fields(m.Name)[0] // "January"
		if sel == m.Key || strings.EqualFold(sel, m.Name) || strings.EqualFold(sel, short) {
			return m.Windows[0]
		}
	}
	return ""
}

// RtFrontpage - send the html for "/"
func RtFrontpage(c echo.Context) error {
	const (
		FAIL = "RtFrontpage() could not list the stored windows: %s"
	)

	windows, err := Store.Windows(c.Request().Context())
	if err != nil {
		Msg.WARN(fmt.Sprintf(FAIL, err.Error()))
	}

	gc := lnch.GitCommit
	if gc == "" {
		gc = "UNKNOWN"
	}

	subs := map[string]interface{}{
		"months":   months(windows),
		"selector": SELECTOR,
		"version":  fmt.Sprintf("%s [git: %s]", vv.VERSION+lnch.VersSuppl, gc),
		"name":     vv.MYNAME,
	}

	var b bytes.Buffer
	if err = pages.ExecuteTemplate(&b, "frontpage.html", subs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, b.String())
}

// RtSubmit - POST "/submit": redirect to the chosen window or back to "/"
func RtSubmit(c echo.Context) error {
	windows, err := Store.Windows(c.Request().Context())
	if err != nil {
		Msg.WARN(fmt.Sprintf("RtSubmit(): %s", err.Error()))
		return c.Redirect(http.StatusSeeOther, "/")
	}

	label := resolveselection(c.FormValue(SELECTOR), windows)
	if label == "" {
		Msg.PEEK(fmt.Sprintf("RtSubmit(): no window for '%s'", c.FormValue(SELECTOR)))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Redirect(http.StatusSeeOther, "/topics/"+label)
}
