package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"tradecapacity/internal/adapters/http/middleware"
	"tradecapacity/internal/application/listutil"
	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/alert"
	"tradecapacity/internal/domain/route"
	"tradecapacity/internal/domain/session"
	"tradecapacity/internal/domain/sidebar"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts page bodies to HTML.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("internal_error", "error", err.Error())
	}
}

// navLink is one sidebar entry.
type navLink struct {
	route.NavItem
	Active bool
}

// shell is the chrome around every page.
type shell struct {
	Session  session.Session
	Initials string
	Alert    alert.Alert
	Sidebar  sidebar.State
	Layout   sidebar.Layout
	Nav      []navLink
	View     route.View
	Title    string
	Return   string
}

func newShell(st viewstate.State, view route.View) shell {
	nav := make([]navLink, 0, len(route.NavItems))
	for _, item := range route.NavItems {
		nav = append(nav, navLink{NavItem: item, Active: item.View == view})
	}
	ret := view.Path()
	if view == route.Login {
		ret = "/login"
	}
	return shell{
		Session:  st.Session,
		Initials: st.Session.Initials(),
		Alert:    st.Alert,
		Sidebar:  st.Sidebar,
		Layout:   st.Sidebar.Layout(),
		Nav:      nav,
		View:     view,
		Title:    view.Title(),
		Return:   ret,
	}
}

// renderTemplate renders a page inside the layout.
// data["Shell"] is filled from the controller's state.
func renderTemplate(w http.ResponseWriter, r *http.Request, view route.View, templateName string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if c, ok := middleware.ControllerFromContext(r.Context()); ok {
		data["Shell"] = newShell(c.Snapshot(), view)
	}

	funcMap := template.FuncMap{
		"csrfField":      func() template.HTML { return csrf.TemplateField(r) },
		"renderMarkdown": renderMarkdown,
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
		"px":             func(n int) string { return fmt.Sprintf("%dpx", n) },
		"alertClass": func(color string) string {
			return "alert-" + alert.NormalizeColor(color)
		},
		"join":           strings.Join,
		"perPageOptions": func() []int { return listutil.PerPageOptions },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templatesFS,
		"templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, fmt.Errorf("parse template %s: %w", templateName, err))
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render template %s: %w", templateName, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
