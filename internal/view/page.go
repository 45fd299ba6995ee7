package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/drakos74/free-iris/internal/form"
	"github.com/drakos74/free-iris/internal/model"
)

//go:embed templates/page.html
var templates embed.FS

var page = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f", v*100)
	},
	"fixed2": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"fixed3": func(v float64) string {
		return fmt.Sprintf("%.3f", v)
	},
	"healthLabel": HealthLabel,
	"run": func(title string, run *model.Run) runData {
		return runData{Title: title, Run: run}
	},
}).ParseFS(templates, "templates/page.html"))

type pageData struct {
	form.State
	Fields  []model.Field
	Example model.Form
	// Ready is true when only the completeness of the fields gates the compare trigger.
	Ready bool
}

type runData struct {
	Title string
	Run   *model.Run
}

// HealthLabel returns the text shown for the health status.
func HealthLabel(h model.Health) string {
	switch h {
	case model.Healthy:
		return "Connected"
	case model.Unhealthy:
		return "Problems"
	case model.Offline:
		return "Disconnected"
	}
	return "Unknown"
}

// Page renders the html page of the form.
func Page(w io.Writer, s form.State) error {
	return page.Execute(w, pageData{
		State:   s,
		Fields:  model.Fields,
		Example: model.Example(),
		Ready:   s.Health == model.Healthy && !s.Comparing,
	})
}
