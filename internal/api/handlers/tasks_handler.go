package handlers

import (
	"fmt"
	"net/http"

	"github.com/staffdesk/admin/internal/api/types"
	"github.com/staffdesk/admin/internal/flash"
	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/services"
	"github.com/staffdesk/admin/internal/web"
)

const tasksPath = "/pm/tasks"

type TasksHandler struct {
	*Base
	svc services.TaskService
}

func NewTasksHandler(base *Base, svc services.TaskService) *TasksHandler {
	return &TasksHandler{Base: base, svc: svc}
}

func tasksForProject(projectID uint) string {
	return fmt.Sprintf("%s?project_id=%d", tasksPath, projectID)
}

// List shows the task board. A project_id that is not a number is ignored.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.TaskFilter{Show: showParam(r)}
	if pid, err := types.ParseID(r.URL.Query().Get("project_id")); err == nil {
		filter.ProjectID = &pid
	}

	rows, err := h.svc.List(r.Context(), filter)
	if err != nil {
		serverError(w, r, err)
		return
	}
	projects, err := h.svc.ProjectOptions(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageTasks, map[string]any{
		"Tasks":      rows,
		"Projects":   projects,
		"ProjectID":  filter.ProjectID,
		"Show":       filter.Show,
		"CurrentURL": r.URL.RequestURI(),
	})
}

func (h *TasksHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, modeAdd, nil)
}

func (h *TasksHandler) Add(w http.ResponseWriter, r *http.Request) {
	var f types.TaskForm
	if !h.bind(w, r, &f) {
		return
	}
	in, err := f.Input()
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if _, err := h.svc.Create(r.Context(), in); err != nil {
		h.form(w, r, modeAdd, nil, failure(err, "Error creating task: ", nil))
		return
	}
	h.redirect(w, r, tasksForProject(in.ProjectID), flash.Success("Task created successfully."))
}

func (h *TasksHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	h.form(w, r, modeEdit, t)
}

func (h *TasksHandler) Edit(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var f types.TaskForm
	if !h.bind(w, r, &f) {
		return
	}
	in, err := f.Input()
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Update(r.Context(), t.ID, in); err != nil {
		h.form(w, r, modeEdit, t, failure(err, "Error updating task: ", nil))
		return
	}
	h.redirect(w, r, tasksForProject(in.ProjectID), flash.Success("Task updated successfully."))
}

// Disable soft-deletes a task and returns to the local path in the "next"
// form field, or to the unfiltered board.
func (h *TasksHandler) Disable(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	back := tasksPath
	if next := r.PostFormValue("next"); localPath(next) {
		back = next
	}
	if err := h.svc.Disable(r.Context(), id); err != nil {
		h.redirect(w, r, back, failure(err, "Error disabling task: ", nil))
		return
	}
	h.redirect(w, r, back, flash.Info("Task disabled (soft delete)."))
}

func (h *TasksHandler) load(w http.ResponseWriter, r *http.Request) (*models.Task, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.missing(w, r, err, tasksPath, "Task not found.")
		return nil, false
	}
	return t, true
}

func (h *TasksHandler) form(w http.ResponseWriter, r *http.Request, mode string, t *models.Task, now ...flash.Message) {
	opts, err := h.svc.FormOptions(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageTaskForm, map[string]any{
		"Mode":      mode,
		"Task":      t,
		"Projects":  opts.Projects,
		"Employees": opts.Employees,
		"Statuses":  opts.Statuses,
	}, now...)
}
