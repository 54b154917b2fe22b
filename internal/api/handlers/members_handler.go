package handlers

import (
	"fmt"
	"net/http"

	"github.com/staffdesk/admin/internal/api/types"
	"github.com/staffdesk/admin/internal/flash"
	"github.com/staffdesk/admin/internal/services"
	"github.com/staffdesk/admin/internal/web"
	appErr "github.com/staffdesk/admin/pkg/errors"
)

var memberDuplicates = map[string]string{
	// The composite key carries no field of its own.
	"": "That employee is already assigned to this project.",
}

type MembersHandler struct {
	*Base
	svc services.MemberService
}

func NewMembersHandler(base *Base, svc services.MemberService) *MembersHandler {
	return &MembersHandler{Base: base, svc: svc}
}

func membersPath(projectID uint) string {
	return fmt.Sprintf("/pm/projects/%d/members", projectID)
}

func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.roster(w, r, id)
}

// Assign adds an employee to the project. An unknown project goes back to the
// project list; any other rejection renders the membership page with the
// reason.
func (h *MembersHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var f types.MemberForm
	if !h.bind(w, r, &f) {
		return
	}
	employeeID, err := types.ParseID(f.EmployeeID)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Assign(r.Context(), id, employeeID); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			h.redirect(w, r, projectsPath, flash.Warning("Project not found."))
			return
		}
		h.roster(w, r, id, failure(err, "Error assigning employee: ", memberDuplicates))
		return
	}
	h.redirect(w, r, membersPath(id), flash.Success("Employee assigned to project."))
}

// Remove deletes the assignment; removing one that does not exist succeeds.
func (h *MembersHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	if err := h.svc.Remove(r.Context(), id, employeeID); err != nil {
		h.redirect(w, r, membersPath(id), failure(err, "Error removing member: ", nil))
		return
	}
	h.redirect(w, r, membersPath(id), flash.Info("Employee removed from project."))
}

func (h *MembersHandler) roster(w http.ResponseWriter, r *http.Request, projectID uint, now ...flash.Message) {
	ros, err := h.svc.Roster(r.Context(), projectID)
	if err != nil {
		h.missing(w, r, err, projectsPath, "Project not found.")
		return
	}
	h.page(w, r, web.PageProjectMembers, map[string]any{
		"Project":    ros.Project,
		"Members":    ros.Members,
		"Candidates": ros.Candidates,
	}, now...)
}
