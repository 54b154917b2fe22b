// Package web renders the console's HTML pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"gorm.io/datatypes"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names accepted by Render.
const (
	PageEmployees      = "employees_list"
	PageEmployeeForm   = "employee_form"
	PageClients        = "clients_list"
	PageClientForm     = "client_form"
	PageProjects       = "projects_list"
	PageProjectForm    = "project_form"
	PageProjectMembers = "project_members"
	PageTasks          = "tasks_list"
	PageTaskForm       = "task_form"
)

const dateLayout = "2006-01-02"

// Renderer holds one template set per page, each cloned from the shared
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New(path.Base(layoutFile)).Funcs(funcs()).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never leaves
// a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data map[string]any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"date":     formatDate,
		"deref":    deref,
		"refersTo": refersTo,
		"fullName": fullName,
	}
}

// formatDate renders date columns as YYYY-MM-DD; nil and zero dates render
// empty.
func formatDate(v any) string {
	var t time.Time
	switch d := v.(type) {
	case datatypes.Date:
		t = time.Time(d)
	case *datatypes.Date:
		if d == nil {
			return ""
		}
		t = time.Time(*d)
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return ""
		}
		t = *d
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// refersTo reports whether an optional foreign key points at id.
func refersTo(fk *uint, id uint) bool {
	return fk != nil && *fk == id
}

func fullName(first, last *string) string {
	return strings.TrimSpace(deref(first) + " " + deref(last))
}
