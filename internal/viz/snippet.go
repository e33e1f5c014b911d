//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package viz

import (
	"bytes"
	"fmt"
	"github.com/go-echarts/go-echarts/v2/components"
	"html/template"
	"io"
	"regexp"
)

// Snippet - the html+js for a single chart, ready to be dropped into a page that already loads echarts
func Snippet(c components.Charter) (string, error) {
	// go-echarts wants to emit a whole page; the override below yields only the chart div and its script

	// [a] validate the chart
	c.Validate()

	// [b] we are building a page with only one chart and doing it by hand
	p := components.NewPage()
	p.Renderer = NewSnippetRender(p, p.Validate)

	// [c] add assets to the page
	assets := c.GetAssets()
	for _, v := range assets.JSAssets.Values {
		p.JSAssets.Add(v)
	}
	for _, v := range assets.CSSAssets.Values {
		p.CSSAssets.Add(v)
	}

	// [d] add the chart to the page
	p.Charts = append(p.Charts, c)
	p.Validate()

	// [e] render the chart and get the html+js for it
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

type SnippetRender struct {
	c      interface{}
	before []func()
}

// NewSnippetRender returns a render implementation for Page.
func NewSnippetRender(c interface{}, before ...func()) *SnippetRender {
	return &SnippetRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *SnippetRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "chart"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	tpl := mustsnippettemplate(TEMPLNAME, []string{SnippetBaseTpl, SnippetPageTpl})

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, TEMPLNAME, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

func mustsnippettemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	}).Parse(contents[0]))

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

var SnippetBaseTpl = `
{{- define "base" }}
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});
    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var SnippetPageTpl = `
{{- define "chart" }}
	<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
{{ end }}
`
