//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"embed"
	"fmt"
	"github.com/labstack/echo/v4"
	"html/template"
	"net/http"
)

//go:embed emb
var efs embed.FS

var (
	pages = template.Must(template.ParseFS(efs, "emb/html/*.html"))
)

// RtEmbCSS - send "tts.css"
func RtEmbCSS(c echo.Context) error {
	const (
		ECSS = "emb/css/tts.css"
	)

	j, e := efs.ReadFile(ECSS)
	if e != nil {
		Msg.WARN(fmt.Sprintf("RtEmbCSS() can't find %s", ECSS))
		return c.String(http.StatusNotFound, "")
	}
	return c.Blob(http.StatusOK, "text/css", j)
}
