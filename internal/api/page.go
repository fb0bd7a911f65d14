package api

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type outputView struct {
	ID    string
	Label string
	Text  string
}

type pageView struct {
	Error   string
	Outputs []outputView
}

// newPageView lays the four results out in their fixed order.
func newPageView(outputs [4]string, errMsg string) pageView {
	return pageView{
		Error: errMsg,
		Outputs: []outputView{
			{ID: "summary", Label: "Plain-language Summary", Text: outputs[0]},
			{ID: "use-cases", Label: "Startup Use Cases", Text: outputs[1]},
			{ID: "pitch-deck", Label: "Pitch Deck Draft", Text: outputs[2]},
			{ID: "monetization", Label: "Monetization Models", Text: outputs[3]},
		},
	}
}

func renderPage(w io.Writer, v pageView) error {
	return pageTemplate.Execute(w, v)
}
