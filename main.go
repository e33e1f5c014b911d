//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/db"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/mdl"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/e-gun/TopicTweetsServer/internal/web"
	"github.com/pkg/profile"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	Msg = lnch.Msg
)

func main() {
	const (
		FAIL1 = "could not open the '%s' store: %s"
		FAIL2 = "model run aborted: %s"
		MSG1  = "%s (v.%s) [loglevel=%d]"
	)

	// go tool pprof --pdf ./TopicTweetsServer /var/folders/.../cpu.pprof > profile.pdf
	lnch.ConfigAtLaunch()
	cfg := *lnch.Config

	if cfg.ProfileCPU {
		defer profile.Start().Stop()
	} else if cfg.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	Msg.MAND(fmt.Sprintf(MSG1, vv.MYNAME, vv.VERSION+lnch.VersSuppl, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	previous := time.Now()

	// [a] fetch the source csv if asked

	if cfg.FetchURL != "" {
		Msg.EC(mdl.FetchSource(ctx, cfg))
		Msg.Timer("A1", "source fetched", start, previous)
		previous = time.Now()
	}

	// [b] storage

	st, err := db.Open(ctx, cfg)
	if err != nil {
		Msg.EC(fmt.Errorf(FAIL1, cfg.SQLProvider, err.Error()))
	}
	defer st.Close()

	if cfg.InitDB {
		Msg.EC(mdl.InitStore(ctx, cfg, st))
		Msg.Timer("A2", "store initialized", start, previous)
		previous = time.Now()
	}

	// [c] model every window and report

	if cfg.RunModel {
		meta, e := lnch.LoadModelMeta(cfg.MetaPath)
		Msg.EC(e)
		if !cfg.InitDB {
			Msg.EC(st.InitSchema(ctx))
		}

		outcomes, e := mdl.NewRunner(cfg, meta, st).Run(ctx)
		if e != nil {
			Msg.EC(fmt.Errorf(FAIL2, e.Error()))
		}
		mdl.Report(os.Stdout, outcomes)
		Msg.Timer("A3", fmt.Sprintf("%d windows modeled", len(outcomes)), start, previous)
	}

	// [d] serve

	Msg.EC(web.StartEchoServer(cfg, st))
}
