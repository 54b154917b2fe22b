package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	mw "github.com/staffdesk/admin/internal/api/middleware"
	"github.com/staffdesk/admin/internal/api/types"
	"github.com/staffdesk/admin/internal/api/validators"
	"github.com/staffdesk/admin/internal/flash"
	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/repository"
	appErr "github.com/staffdesk/admin/pkg/errors"
)

const (
	modeAdd  = "add"
	modeEdit = "edit"
)

// Renderer turns a named page and its data into HTML.
type Renderer interface {
	Render(w io.Writer, page string, data map[string]any) error
}

// Base holds what every page handler needs: templates, flash messages and
// form validation.
type Base struct {
	renderer Renderer
	flashes  flash.Store
	validate *validator.Validate
}

func NewBase(renderer Renderer, flashes flash.Store, validate *validator.Validate) *Base {
	if validate == nil {
		validate = validators.New()
	}
	return &Base{renderer: renderer, flashes: flashes, validate: validate}
}

// page renders a full HTML page. Queued flash messages are shown first,
// followed by now, which belong to this response only.
func (b *Base) page(w http.ResponseWriter, r *http.Request, page string, data map[string]any, now ...flash.Message) {
	queued, err := b.flashes.Pop(w, r)
	if err != nil {
		mw.Log(r.Context()).Warn("pop flash messages failed", zap.Error(err))
	}
	data["Flashes"] = append(queued, now...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.renderer.Render(w, page, data); err != nil {
		mw.Log(r.Context()).Error("render page failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// redirect queues msgs for the next page and answers 302 Found.
func (b *Base) redirect(w http.ResponseWriter, r *http.Request, to string, msgs ...flash.Message) {
	for _, m := range msgs {
		if err := b.flashes.Add(w, r, m); err != nil {
			mw.Log(r.Context()).Warn("queue flash message failed", zap.String("text", m.Text), zap.Error(err))
		}
	}
	http.Redirect(w, r, to, http.StatusFound)
}

// bind parses the submitted form into dst and validates it. On failure it
// has already answered 400.
func (b *Base) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := r.ParseForm(); err != nil {
		badRequest(w, r, err.Error())
		return false
	}
	types.Bind(r.PostForm, dst)
	if err := b.validate.Struct(dst); err != nil {
		badRequest(w, r, validators.Message(err))
		return false
	}
	return true
}

// missing handles a failed lookup of the record a page is about: not-found
// goes back to the list with a warning, anything else is a server error.
func (b *Base) missing(w http.ResponseWriter, r *http.Request, err error, list, notice string) {
	if appErr.IsCode(err, appErr.CodeNotFound) {
		b.redirect(w, r, list, flash.Warning(notice))
		return
	}
	serverError(w, r, err)
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	mw.Log(r.Context()).Info("bad request", zap.String("path", r.URL.Path), zap.String("reason", msg))
	http.Error(w, "Bad Request: "+msg, http.StatusBadRequest)
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	mw.Log(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// pathID reads a numeric route parameter. Routes constrain ids to digits;
// values that overflow uint are treated as not found.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := types.ParseID(chi.URLParam(r, name))
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func showParam(r *http.Request) models.Show {
	return models.ParseShow(r.URL.Query().Get("show"))
}

// failure picks the flash shown for a failed write. Unique violations on a
// field listed in duplicates get that field's warning; everything else is
// reported as danger with the underlying error text.
func failure(err error, prefix string, duplicates map[string]string) flash.Message {
	if appErr.IsCode(err, appErr.CodeAlreadyExists) {
		field, _ := appErr.MetaString(err, repository.MetaField)
		if text, ok := duplicates[field]; ok {
			return flash.Warning(text)
		}
	}
	return flash.Danger(prefix + appErr.Cause(err).Error())
}

// localPath reports whether next is a same-site absolute path.
func localPath(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, `/\`)
}
