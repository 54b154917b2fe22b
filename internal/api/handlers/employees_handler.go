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

const employeesPath = "/hrm/employees"

var employeeDuplicates = map[string]string{
	repository.FieldEmployeeNumber: "Employee number already exists. Please enter a unique employee number.",
	repository.FieldEmail:          "Email address already exists. Please use a different email.",
}

type EmployeesHandler struct {
	*Base
	svc services.EmployeeService
}

func NewEmployeesHandler(base *Base, svc services.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{Base: base, svc: svc}
}

func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	show := showParam(r)
	rows, err := h.svc.List(r.Context(), show)
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageEmployees, map[string]any{"Employees": rows, "Show": show})
}

func (h *EmployeesHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, modeAdd, nil)
}

// Add creates an employee. A failed insert re-renders an empty form.
func (h *EmployeesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var f types.EmployeeForm
	if !h.bind(w, r, &f) {
		return
	}
	in, err := f.Input()
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if _, err := h.svc.Create(r.Context(), in); err != nil {
		h.form(w, r, modeAdd, nil, failure(err, "An unexpected database error occurred: ", employeeDuplicates))
		return
	}
	h.redirect(w, r, employeesPath, flash.Success("Employee added successfully."))
}

func (h *EmployeesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}
	h.form(w, r, modeEdit, e)
}

// Edit updates an employee. A failed update re-renders the stored record.
func (h *EmployeesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}
	var f types.EmployeeForm
	if !h.bind(w, r, &f) {
		return
	}
	in, err := f.Input()
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Update(r.Context(), e.ID, in); err != nil {
		h.form(w, r, modeEdit, e, failure(err, "Error updating employee: ", employeeDuplicates))
		return
	}
	h.redirect(w, r, employeesPath, flash.Success("Employee updated successfully."))
}

func (h *EmployeesHandler) Disable(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Disable(r.Context(), id); err != nil {
		h.redirect(w, r, employeesPath, failure(err, "Error disabling employee: ", nil))
		return
	}
	h.redirect(w, r, employeesPath, flash.Info("Employee disabled (soft delete)."))
}

func (h *EmployeesHandler) load(w http.ResponseWriter, r *http.Request) (*models.Employee, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.missing(w, r, err, employeesPath, "Employee not found.")
		return nil, false
	}
	return e, true
}

func (h *EmployeesHandler) form(w http.ResponseWriter, r *http.Request, mode string, e *models.Employee, now ...flash.Message) {
	opts, err := h.svc.FormOptions(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageEmployeeForm, map[string]any{
		"Mode":        mode,
		"Employee":    e,
		"Departments": opts.Departments,
		"JobTitles":   opts.JobTitles,
	}, now...)
}
