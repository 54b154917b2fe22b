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

const clientsPath = "/pm/clients"

var clientDuplicates = map[string]string{
	repository.FieldClientName: "Client name already exists. Please choose a unique name.",
}

type ClientsHandler struct {
	*Base
	svc services.ClientService
}

func NewClientsHandler(base *Base, svc services.ClientService) *ClientsHandler {
	return &ClientsHandler{Base: base, svc: svc}
}

func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	show := showParam(r)
	rows, err := h.svc.List(r.Context(), show)
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.page(w, r, web.PageClients, map[string]any{"Clients": rows, "Show": show})
}

func (h *ClientsHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, modeAdd, nil)
}

func (h *ClientsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var f types.ClientForm
	if !h.bind(w, r, &f) {
		return
	}
	if _, err := h.svc.Create(r.Context(), f.Input()); err != nil {
		h.form(w, r, modeAdd, nil, failure(err, "Error creating client: ", clientDuplicates))
		return
	}
	h.redirect(w, r, clientsPath, flash.Success("Client created successfully."))
}

func (h *ClientsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	h.form(w, r, modeEdit, c)
}

func (h *ClientsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	var f types.ClientForm
	if !h.bind(w, r, &f) {
		return
	}
	if err := h.svc.Update(r.Context(), c.ID, f.Input()); err != nil {
		h.form(w, r, modeEdit, c, failure(err, "Error updating client: ", clientDuplicates))
		return
	}
	h.redirect(w, r, clientsPath, flash.Success("Client updated successfully."))
}

func (h *ClientsHandler) Disable(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Disable(r.Context(), id); err != nil {
		h.redirect(w, r, clientsPath, failure(err, "Error disabling client: ", nil))
		return
	}
	h.redirect(w, r, clientsPath, flash.Info("Client disabled (soft delete)."))
}

func (h *ClientsHandler) load(w http.ResponseWriter, r *http.Request) (*models.Client, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.missing(w, r, err, clientsPath, "Client not found.")
		return nil, false
	}
	return c, true
}

func (h *ClientsHandler) form(w http.ResponseWriter, r *http.Request, mode string, c *models.Client, now ...flash.Message) {
	h.page(w, r, web.PageClientForm, map[string]any{"Mode": mode, "Client": c}, now...)
}
