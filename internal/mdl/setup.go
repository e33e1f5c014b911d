//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"context"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/db"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/twt"
	"os"
)

// InitStore - create the tables and, if the source csv is present, copy its rows into the tweets table
func InitStore(ctx context.Context, cfg str.CurrentConfiguration, st db.Store) error {
	const (
		MSG1 = "'%s' not found: the tweets table was left empty"
		MSG2 = "%d of %d tweets added to the tweets table"
	)

	if err := st.InitSchema(ctx); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DataPath); err != nil {
		Msg.NOTE(fmt.Sprintf(MSG1, cfg.DataPath))
		return nil
	}

	tw, err := twt.LoadCSV(cfg.DataPath)
	if err != nil {
		return err
	}

	n, err := st.AppendTweets(ctx, tw)
	if err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG2, n, len(tw)))
	return nil
}

// FetchSource - download the csv named by -fx to the configured data path
func FetchSource(ctx context.Context, cfg str.CurrentConfiguration) error {
	_, err := twt.Fetch(ctx, cfg.FetchURL, cfg.DataPath)
	return err
}
