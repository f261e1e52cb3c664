package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/yuin/goldmark"

	"github.com/yanqian/ai-horoscope/internal/domain/astrology"
	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
	"github.com/yanqian/ai-horoscope/internal/domain/horoscope"
)

//go:embed web
var webFS embed.FS

// pageData feeds index.tmpl. Result is empty on the landing page.
type pageData struct {
	Error     string
	Name      string
	Sign      string
	Natal     string
	Result    template.HTML
	Fallback  bool
	Astronomy astronomy.Snapshot
	Houses    []astrology.HouseCusp
	Moon      astronomy.MoonPhaseReading
}

var markdown = goldmark.New()

func resultPage(res horoscope.Result, moon astronomy.MoonPhaseReading) pageData {
	return pageData{
		Name:      res.Name,
		Sign:      res.Sign,
		Natal:     res.Natal,
		Result:    renderMarkdown(res.Horoscope),
		Fallback:  res.Fallback,
		Astronomy: res.Astronomy,
		Houses:    res.Houses,
		Moon:      moon,
	}
}

// renderMarkdown converts generator output to HTML. Raw HTML in the input is
// not passed through, so the result is safe to embed.
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"clock": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("15:04")
		},
	}).ParseFS(webFS, "web/templates/*.tmpl")
}

func staticFS() (fs.FS, error) {
	return fs.Sub(webFS, "web/static")
}
