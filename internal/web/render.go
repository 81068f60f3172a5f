package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/theme"
	"github.com/alexisbeaulieu97/momentum/internal/views"
)

//go:embed templates/*.html static/*
var assets embed.FS

var pageNames = []string{"home", "login", "signup", "dashboard", "shop", "inventory", "achievements"}

func staticFS() fs.FS { return assets }

var funcs = template.FuncMap{
	"capitalize": capitalize,
	"percent":    model.Percent,
}

// layout is the data every page template renders inside.
type layout struct {
	Title         string
	Nav           string
	SignedIn      bool
	Initials      string
	ProfileName   string
	ProfileEmail  string
	Notifications views.Notifications
	Flashes       []Flash
	Notices       []string

	RootStyle     template.CSS
	OverrideStyle template.CSS
	DataTheme     string
	BodyClass     string

	Page any
}

// withDocument copies the session document into the layout.
func (l *layout) withDocument(snap theme.Snapshot) {
	l.RootStyle = template.CSS(snap.RootStyle())
	l.OverrideStyle = template.CSS(snap.OverrideStyle())
	l.DataTheme = snap.DataTheme()
	l.BodyClass = snap.BodyClass()
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(assets,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes page into a buffer so a template error never leaves a
// half-written response.
func (r *renderer) render(w http.ResponseWriter, status int, page string, data layout) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// options builds a select's option list with selected marked.
func options(selected string, values ...string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		label := "All"
		if v != "all" {
			label = capitalize(v)
		}
		out = append(out, option{Value: v, Label: label, Selected: strings.EqualFold(v, selected)})
	}
	return out
}
