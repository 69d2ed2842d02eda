package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/mbolis/case-report/model"
	"github.com/mbolis/case-report/report"
)

//go:embed templates
var templateFS embed.FS

var panel = template.Must(template.New("panel.html").
	Funcs(template.FuncMap{
		"destructive": func(n model.Notification) bool { return n.Variant == model.VariantDestructive },
	}).
	ParseFS(templateFS, "templates/panel.html"))

type Option struct {
	Value   string
	Checked bool
}

type Panel struct {
	Enabled       bool
	State         report.State
	Conclusions   []Option
	Notifications []model.Notification
}

func NewPanel(enabled bool, state report.State, notes []model.Notification) Panel {
	p := Panel{
		Enabled:       enabled,
		State:         state,
		Notifications: notes,
	}
	for _, c := range model.Conclusions() {
		p.Conclusions = append(p.Conclusions, Option{
			Value:   c.String(),
			Checked: c == state.Form.Conclusion,
		})
	}
	return p
}

func RenderPanel(w io.Writer, p Panel) error {
	return panel.Execute(w, p)
}
