package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"devchatClient/internal/logger"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"timeAgo": func(ts models.Timestamp) string {
		if ts.IsZero() {
			return ""
		}
		return humanize.Time(ts.Time)
	},
	"formatDate": func(ts models.Timestamp) string {
		if ts.IsZero() {
			return ""
		}
		return ts.Format("Jan 2, 2006 15:04")
	},
	"initial": func(name string) string {
		for _, r := range name {
			return string(unicode.ToUpper(r))
		}
		return "U"
	},
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if path.Base(page) == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, err
		}
		templates[strings.TrimSuffix(path.Base(page), ".html")] = t
	}
	return templates, nil
}

// pageData is what every template receives.
type pageData struct {
	Title    string
	Session  models.Session
	Username string
	Flash    *Flash
	Data     interface{}
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}) {
	t, ok := h.templates[name]
	if !ok {
		WriteError(w, "template not found", http.StatusInternalServerError)
		return
	}

	state := session.FromContext(r.Context())
	page := pageData{
		Title:    title,
		Session:  state.Session,
		Username: state.Session.Subject(),
		Flash:    consumeFlash(w, r),
		Data:     data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		logger.Log.Error("render failed", zap.String("template", name), zap.Error(err))
		WriteError(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
