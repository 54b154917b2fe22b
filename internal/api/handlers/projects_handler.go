package handlers

import (
	"net/http"

	"github.com/staffdesk/admin/internal/api/types"
	"github.com/staffdesk/admin/internal/flash"
	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/internal/services"
	"github.com/staffdesk/admin/internal/web"
)

const projectsPath = "/pm/projects"

var projectDuplicates = map[string]string{
	repository.FieldProjectCode: "Project code already exists. Please use a unique project code.",
}

type ProjectsHandler struct {
	*Base
	svc services.ProjectService
}

func NewProjectsHandler(base *Base, svc services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{Base: base, svc: svc}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	show := showParam(r)
	rows, err := h.svc.List(r.Context(), show)
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageProjects, map[string]any{"Projects": rows, "Show": show})
}

func (h *ProjectsHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, modeAdd, nil)
}

func (h *ProjectsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var f types.ProjectForm
	if !h.bind(w, r, &f) {
		return
	}
	in, err := f.Input()
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if _, err := h.svc.Create(r.Context(), in); err != nil {
		h.form(w, r, modeAdd, nil, failure(err, "Error creating project: ", projectDuplicates))
		return
	}
	h.redirect(w, r, projectsPath, flash.Success("Project created successfully."))
}

func (h *ProjectsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	h.form(w, r, modeEdit, p)
}

func (h *ProjectsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	var f types.ProjectForm
	if !h.bind(w, r, &f) {
		return
	}
	in, err := f.Input()
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Update(r.Context(), p.ID, in); err != nil {
		h.form(w, r, modeEdit, p, failure(err, "Error updating project: ", projectDuplicates))
		return
	}
	h.redirect(w, r, projectsPath, flash.Success("Project updated successfully."))
}

func (h *ProjectsHandler) Disable(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Disable(r.Context(), id); err != nil {
		h.redirect(w, r, projectsPath, failure(err, "Error disabling project: ", nil))
		return
	}
	h.redirect(w, r, projectsPath, flash.Info("Project disabled (soft delete)."))
}

func (h *ProjectsHandler) load(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.missing(w, r, err, projectsPath, "Project not found.")
		return nil, false
	}
	return p, true
}

func (h *ProjectsHandler) form(w http.ResponseWriter, r *http.Request, mode string, p *models.Project, now ...flash.Message) {
	opts, err := h.svc.FormOptions(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageProjectForm, map[string]any{
		"Mode":     mode,
		"Project":  p,
		"Clients":  opts.Clients,
		"Statuses": opts.Statuses,
	}, now...)
}
