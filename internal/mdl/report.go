//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"strconv"
)

// Report - a table of the outcomes for the console
func Report(w io.Writer, outcomes []Outcome) {
	const (
		STATUSWIDTH = 48
	)

	pr := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"window", "documents", "best k", "coherence", "files", "status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, o := range outcomes {
		status := "ok"
		k, coh := "-", "-"
		if o.Err != nil {
			status = gen.AvoidLongLines(o.Err.Error(), STATUSWIDTH)
		}
		if o.BestK > 0 {
			k = strconv.Itoa(o.BestK)
			coh = fmt.Sprintf("%.4f", o.Coherence)
		}
		table.Append([]string{o.Label, pr.Sprintf("%d", o.Documents), k, coh, strconv.Itoa(len(o.Files)), status})
	}
	table.Render()
}
