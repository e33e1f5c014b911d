//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"math"
	"strconv"
)

var (
	Msg = lnch.Msg
)

const (
	CHRTWIDTH  = "900px"
	CHRTHEIGHT = "500px"
	CLOUDWIDTH = "600px"
	CLOUDHGHT  = "400px"
	FONTSTYLE  = "normal"
	FONTFAMILY = "sans-serif"
	SAVETYPE   = "png"
	SAVESTR    = "Save to file..."
)

func round(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func toolbox(name string) opts.Toolbox {
	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Name:  name,
		Title: SAVESTR, // get chinese if ""
	}
	return opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}
}

func title(t string, sub string) opts.Title {
	return opts.Title{
		Title:         t,
		Subtitle:      sub,
		TitleStyle:    &opts.TextStyle{FontStyle: FONTSTYLE, FontSize: 16, FontFamily: FONTFAMILY},
		SubtitleStyle: &opts.TextStyle{FontStyle: FONTSTYLE, FontSize: 10, FontFamily: FONTFAMILY},
	}
}

// CoherenceChart - coherence score by number of topics for one window
func CoherenceChart(label string, ks []int, scores []float64) *charts.Line {
	const (
		TITLESTR = "Coherence by number of topics: %s"
		SUBSTR   = "k in [%d, %d]"
		SERIES   = "coherence"
	)

	line := charts.NewLine()
	sub := ""
	if len(ks) > 0 {
		sub = fmt.Sprintf(SUBSTR, ks[0], ks[len(ks)-1])
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: label, Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(title(fmt.Sprintf(TITLESTR, label), sub)),
		charts.WithToolboxOpts(toolbox(fmt.Sprintf("%s_k_topics", label))),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "k"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "score"}),
	)

	x := make([]string, len(ks))
	ld := make([]opts.LineData, len(scores))
	for i := range ks {
		x[i] = strconv.Itoa(ks[i])
	}
	for i := range scores {
		ld[i] = opts.LineData{Value: round(scores[i])}
	}

	line.SetXAxis(x).AddSeries(SERIES, ld,
		charts.WithLabelOpts(opts.Label{Show: true}),
		charts.WithLineChartOpts(opts.LineChart{Smooth: false}),
	)
	return line
}

// WordCloud - the heaviest terms of one topic
func WordCloud(label string, topic int, terms []lda.WeightedTerm) *charts.WordCloud {
	const (
		TITLESTR = "Topic %d"
	)

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: label, Width: CLOUDWIDTH, Height: CLOUDHGHT}),
		charts.WithTitleOpts(title(fmt.Sprintf(TITLESTR, topic), label)),
	)

	wd := make([]opts.WordCloudData, len(terms))
	for i, t := range terms {
		wd[i] = opts.WordCloudData{Name: t.Term, Value: round(t.Weight)}
	}

	wc.AddSeries(fmt.Sprintf(TITLESTR, topic), wd,
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			Shape:     "circle",
			SizeRange: []float32{14, 60},
		}),
	)
	return wc
}

// WordCloudPage - one cloud per topic on a single page
func WordCloudPage(label string, topics [][]lda.WeightedTerm) *components.Page {
	p := components.NewPage()
	p.PageTitle = fmt.Sprintf("Word clouds: %s", label)
	p.SetLayout(components.PageFlexLayout)
	for i, tt := range topics {
		p.AddCharts(WordCloud(label, i, tt))
	}
	return p
}

// MatrixChart - a stacked bar per topic of the four annotation sums
func MatrixChart(label string, rows []str.MatrixRow) *charts.Bar {
	const (
		TITLESTR = "Health-belief annotations by topic: %s"
		SUBSTR   = "%d documents"
		STACK    = "annotations"
	)

	bar := charts.NewBar()
	total := 0
	x := make([]string, len(rows))
	for i, r := range rows {
		x[i] = fmt.Sprintf("topic %d", r.Topic)
		total += r.Count
	}

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: label, Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(title(fmt.Sprintf(TITLESTR, label), fmt.Sprintf(SUBSTR, total))),
		charts.WithToolboxOpts(toolbox(fmt.Sprintf("%s_topic_matrix", label))),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10%"}),
	)

	series := []struct {
		name string
		val  func(str.MatrixRow) int
	}{
		{"susceptibility", func(r str.MatrixRow) int { return r.Susceptibility }},
		{"severity", func(r str.MatrixRow) int { return r.Severity }},
		{"benefits", func(r str.MatrixRow) int { return r.Benefits }},
		{"barriers", func(r str.MatrixRow) int { return r.Barriers }},
	}

	bar.SetXAxis(x)
	for _, s := range series {
		bd := make([]opts.BarData, len(rows))
		for i, r := range rows {
			bd[i] = opts.BarData{Value: s.val(r)}
		}
		bar.AddSeries(s.name, bd, charts.WithBarChartOpts(opts.BarChart{Stack: STACK}))
	}
	return bar
}
