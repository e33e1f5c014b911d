//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/db"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/mx"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"strconv"
	"strings"
)

var (
	Msg       = lnch.Msg
	Store     db.Store
	StaticDir = vv.DEFAULTSTATICDIR
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer(cfg str.CurrentConfiguration, st db.Store) error {
	e := NewEcho(cfg, st)
	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR
	Msg.NOTE(fmt.Sprintf("serving on http://%s:%d/", cfg.HostIP, cfg.HostPort))
	return e.Start(fmt.Sprintf("%s:%d", cfg.HostIP, cfg.HostPort))
}

// NewEcho - the configured server with every route attached
func NewEcho(cfg str.CurrentConfiguration, st db.Store) *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	Store = st
	StaticDir = cfg.StaticDir

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		if len(ua) == 0 {
			return 0, nil
		}
		return buf.WriteString(ua[len(ua)-1])
	}

	//
	// SETUP
	//

	e := echo.New()

	switch cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))
	e.Use(middleware.Recover())
	e.Use(countrequests)

	if cfg.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// ROUTES
	//

	// [a] frontpage ("rt-frontpage.go")

	e.GET("/", RtFrontpage)
	e.POST("/submit", RtSubmit)

	// [b] results ("rt-topics.go")

	e.GET("/topics/:label", RtTopics)            // "/topics/2020-01-01"
	e.GET("/get/json/topics/:label", RtJSTopics) // the same rows as json

	// [c] embedded and generated files ("rt-embedding.go")

	e.GET("/emb/css/tts.css", RtEmbCSS)
	e.Static("/static", cfg.StaticDir)

	// [d] metrics

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(mx.Registry, promhttp.HandlerOpts{})))

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true
	return e
}

// countrequests - feed mx.HTTPRequests; the route template keeps the label cardinality small
func countrequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		code := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		mx.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		return err
	}
}
