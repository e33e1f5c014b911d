//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"runtime"
	"strings"
)

// set with 'go build -ldflags "-X github.com/e-gun/TopicTweetsServer/internal/lnch.GitCommit=$GIT_COMMIT"' etc.

var (
	GitCommit string
	VersSuppl string
	BuildDate string
)

// VersionLine - "[TTS] TopicTweetsServer (v1.0.3) [git: 64974732] [sqlite: data/topics.db] [gl=3; el=0]" before styling
func VersionLine(cc str.CurrentConfiguration) string {
	const (
		ME = "[C1%sC0] C5%sC0 (C2v%sC0)"
		GC = " [C4git: %sC0]"
		SQ = " [C3%s: %sC0]"
		LL = " [C6gl=%d; el=%dC0]"
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(ME, vv.SHORTNAME, vv.MYNAME, vv.VERSION+VersSuppl))
	if GitCommit != "" {
		sb.WriteString(fmt.Sprintf(GC, GitCommit))
	}

	where := cc.SQLitePath
	if cc.SQLProvider == "pgsql" {
		where = fmt.Sprintf("%s@%s:%d/%s", cc.PGLogin.User, cc.PGLogin.Host, cc.PGLogin.Port, cc.PGLogin.DBName)
	}
	sb.WriteString(fmt.Sprintf(SQ, cc.SQLProvider, where))
	sb.WriteString(fmt.Sprintf(LL, cc.LogLevel, cc.EchoLog))
	return sb.String()
}

// BuildInfo - toolchain, platform, and where the run will read and write
func BuildInfo(cc str.CurrentConfiguration) string {
	const (
		ROW = "\tS1%s:S0\tC3%sC0\n"
	)

	rows := [][2]string{
		{"Golang", runtime.Version()},
		{"System", runtime.GOOS + "-" + runtime.GOARCH},
		{"Tweets", cc.DataPath},
		{"Models", cc.ModelDir},
		{"Results", cc.ResultsDir},
	}
	if BuildDate != "" {
		rows = append([][2]string{{"Built", BuildDate}}, rows...)
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf(ROW, r[0], r[1]))
	}
	return sb.String()
}

// PrintVersion - the styled VersionLine() and BuildInfo() on stdout
func PrintVersion(cc str.CurrentConfiguration) {
	fmt.Println(Msg.ColStyle(VersionLine(cc)))
	fmt.Print(Msg.ColStyle(BuildInfo(cc)))
}
