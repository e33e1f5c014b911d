//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package twt

import (
	"context"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Fetch - download url to dest; the file is written to a temporary name and renamed when complete
func Fetch(ctx context.Context, url string, dest string) (int64, error) {
	const (
		FAIL1 = "Fetch() could not build a request for '%s': %w"
		FAIL2 = "Fetch() request for '%s' failed: %w"
		FAIL3 = "Fetch() request for '%s' returned %s"
		MSG1  = "Fetched %s from %s into '%s'"
	)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf(FAIL1, url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf(FAIL2, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf(FAIL3, url, resp.Status)
	}

	if err = os.MkdirAll(filepath.Dir(dest), vv.DIRPERMS); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf(FAIL2, url, err)
	}

	if err = os.Rename(tmp.Name(), dest); err != nil {
		return n, err
	}

	Msg.NOTE(fmt.Sprintf(MSG1, humanize.Bytes(uint64(n)), url, dest))
	Msg.Timer("F", "Fetch()", start, start)
	return n, nil
}
