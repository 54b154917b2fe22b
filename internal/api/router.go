package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/staffdesk/admin/internal/api/handlers"
	mw "github.com/staffdesk/admin/internal/api/middleware"
)

const idPattern = "{id:[0-9]+}"

type Dependencies struct {
	RateLimiter      *mw.RateLimiter
	HealthHandler    *handlers.HealthHandler
	EmployeesHandler *handlers.EmployeesHandler
	ClientsHandler   *handlers.ClientsHandler
	ProjectsHandler  *handlers.ProjectsHandler
	MembersHandler   *handlers.MembersHandler
	TasksHandler     *handlers.TasksHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	if dep.RateLimiter != nil {
		r.Use(dep.RateLimiter.Handler)
	}
	r.Use(chimid.CleanPath)
	r.Use(chimid.Compress(5))

	// Health endpoints
	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/hrm/employees", http.StatusFound)
	})

	r.Route("/hrm/employees", func(er chi.Router) {
		eh := dep.EmployeesHandler
		er.Get("/", eh.List)
		er.Get("/add", eh.AddForm)
		er.Post("/add", eh.Add)
		er.Get("/"+idPattern+"/edit", eh.EditForm)
		er.Post("/"+idPattern+"/edit", eh.Edit)
		er.Post("/"+idPattern+"/disable", eh.Disable)
	})

	r.Route("/pm", func(pm chi.Router) {
		pm.Route("/clients", func(cr chi.Router) {
			ch := dep.ClientsHandler
			cr.Get("/", ch.List)
			cr.Get("/add", ch.AddForm)
			cr.Post("/add", ch.Add)
			cr.Get("/"+idPattern+"/edit", ch.EditForm)
			cr.Post("/"+idPattern+"/edit", ch.Edit)
			cr.Post("/"+idPattern+"/disable", ch.Disable)
		})

		pm.Route("/projects", func(pr chi.Router) {
			ph, mh := dep.ProjectsHandler, dep.MembersHandler
			pr.Get("/", ph.List)
			pr.Get("/add", ph.AddForm)
			pr.Post("/add", ph.Add)
			pr.Get("/"+idPattern+"/edit", ph.EditForm)
			pr.Post("/"+idPattern+"/edit", ph.Edit)
			pr.Post("/"+idPattern+"/disable", ph.Disable)

			// Membership
			pr.Get("/"+idPattern+"/members", mh.List)
			pr.Post("/"+idPattern+"/members", mh.Assign)
			pr.Post("/"+idPattern+"/members/{employeeID:[0-9]+}/remove", mh.Remove)
		})

		pm.Route("/tasks", func(tr chi.Router) {
			th := dep.TasksHandler
			tr.Get("/", th.List)
			tr.Get("/add", th.AddForm)
			tr.Post("/add", th.Add)
			tr.Get("/"+idPattern+"/edit", th.EditForm)
			tr.Post("/"+idPattern+"/edit", th.Edit)
			tr.Post("/"+idPattern+"/disable", th.Disable)
		})
	})

	return r
}
