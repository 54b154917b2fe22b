package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/staffdesk/admin/internal/api/handlers"
	"github.com/staffdesk/admin/internal/api/validators"
	"github.com/staffdesk/admin/internal/flash"
	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/internal/services"
	"github.com/staffdesk/admin/internal/web"
	"github.com/staffdesk/admin/pkg/database"
	"github.com/staffdesk/admin/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Nop()
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(ctx, database.Options{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, repository.Migrate(ctx, db))
	require.NoError(t, repository.SeedLookups(ctx, db))

	employees := repository.NewEmployeeRepository(db)
	clients := repository.NewClientRepository(db)
	projects := repository.NewProjectRepository(db)
	members := repository.NewMemberRepository(db)
	tasks := repository.NewTaskRepository(db)
	lookups := repository.NewLookupRepository(db)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	base := handlers.NewBase(renderer, flash.NewCookieStore([]byte("test-secret-0123456789"), time.Minute), validators.New())

	return NewRouter(Dependencies{
		HealthHandler:    handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		EmployeesHandler: handlers.NewEmployeesHandler(base, services.NewEmployeeService(employees, lookups)),
		ClientsHandler:   handlers.NewClientsHandler(base, services.NewClientService(clients)),
		ProjectsHandler:  handlers.NewProjectsHandler(base, services.NewProjectService(projects, clients)),
		MembersHandler:   handlers.NewMembersHandler(base, services.NewMemberService(projects, employees, members)),
		TasksHandler:     handlers.NewTasksHandler(base, services.NewTaskService(tasks, projects, employees)),
	}), db
}

// browser replays cookies between requests the way a real browser would.
type browser struct {
	t       *testing.T
	h       http.Handler
	db      *gorm.DB
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T) *browser {
	h, db := newTestApp(t)
	return &browser{t: t, h: h, db: db, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	rr := httptest.NewRecorder()
	b.h.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(target string) *httptest.ResponseRecorder { return b.do(http.MethodGet, target, nil) }

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, target, form)
}

// follow asserts a 302 to location and loads it.
func (b *browser) follow(rr *httptest.ResponseRecorder, location string) string {
	b.t.Helper()
	require.Equal(b.t, http.StatusFound, rr.Code, rr.Body.String())
	require.Equal(b.t, location, rr.Header().Get("Location"))
	next := b.get(location)
	require.Equal(b.t, http.StatusOK, next.Code)
	return next.Body.String()
}

func employeeForm(number, first, last, email string) url.Values {
	return url.Values{
		"employee_number": {number},
		"first_name":      {first},
		"last_name":       {last},
		"email":           {email},
		"phone":           {""},
		"hire_date":       {"2024-01-15"},
		"department_id":   {"1"},
		"job_title_id":    {"1"},
	}
}

func seedProject(t *testing.T, b *browser) {
	t.Helper()
	b.follow(b.post("/hrm/employees/add", employeeForm("E001", "Jane", "Doe", "jane@x.com")), "/hrm/employees")
	b.follow(b.post("/pm/clients/add", url.Values{"client_name": {"Acme"}}), "/pm/clients")
	b.follow(b.post("/pm/projects/add", url.Values{
		"client_id":    {"1"},
		"project_code": {"P001"},
		"project_name": {"Portal"},
		"start_date":   {"2024-02-01"},
		"status":       {"Active"},
	}), "/pm/projects")
}

func TestHomeRedirectsToEmployees(t *testing.T) {
	b := newBrowser(t)
	rr := b.get("/")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/hrm/employees", rr.Header().Get("Location"))
}

func TestHealthRoutes(t *testing.T) {
	b := newBrowser(t)
	assert.Equal(t, http.StatusOK, b.get("/healthz").Code)
	assert.Equal(t, http.StatusOK, b.get("/readyz").Code)
}

func TestEmployeeToTaskScenario(t *testing.T) {
	b := newBrowser(t)
	seedProject(t, b)

	page := b.follow(b.post("/pm/tasks/add", url.Values{
		"project_id":  {"1"},
		"employee_id": {"1"},
		"task_name":   {"Build login"},
		"task_status": {"To Do"},
		"due_date":    {"2024-03-01"},
	}), "/pm/tasks?project_id=1")
	assert.Contains(t, page, "Task created successfully.")
	assert.Equal(t, 1, strings.Count(page, "/pm/tasks/1/edit"))
	assert.Contains(t, page, "Build login")
	assert.Contains(t, page, "Jane Doe")

	page = b.follow(b.post("/hrm/employees/1/disable", nil), "/hrm/employees")
	assert.Contains(t, page, "Employee disabled (soft delete).")
	assert.NotContains(t, page, "E001")

	page = b.get("/pm/tasks?project_id=1").Body.String()
	assert.Contains(t, page, "Build login")

	form := b.get("/pm/tasks/add").Body.String()
	assert.Contains(t, form, "P001")
	assert.NotContains(t, form, "E001")

	all := b.get("/hrm/employees?show=all").Body.String()
	assert.Contains(t, all, "E001")
}

func TestDuplicateEmployeeNumberWarns(t *testing.T) {
	b := newBrowser(t)
	b.follow(b.post("/hrm/employees/add", employeeForm("E001", "Jane", "Doe", "jane@x.com")), "/hrm/employees")

	rr := b.post("/hrm/employees/add", employeeForm("E001", "John", "Roe", "john@x.com"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Employee number already exists. Please enter a unique employee number.")
	assert.NotContains(t, rr.Body.String(), "john@x.com")

	rr = b.post("/hrm/employees/add", employeeForm("E002", "John", "Roe", "jane@x.com"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email address already exists. Please use a different email.")

	list := b.get("/hrm/employees?show=all").Body.String()
	assert.Equal(t, 1, strings.Count(list, "/hrm/employees/1/edit"))
	assert.NotContains(t, list, "Roe")
}

func TestEditEmployeeKeepsStoredRecordOnConflict(t *testing.T) {
	b := newBrowser(t)
	b.follow(b.post("/hrm/employees/add", employeeForm("E001", "Jane", "Doe", "jane@x.com")), "/hrm/employees")
	b.follow(b.post("/hrm/employees/add", employeeForm("E002", "John", "Roe", "john@x.com")), "/hrm/employees")

	form := employeeForm("E001", "Johnny", "Roe", "john@x.com")
	form.Set("is_active", "1")
	rr := b.post("/hrm/employees/2/edit", form)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Employee number already exists.")
	assert.Contains(t, rr.Body.String(), `value="E002"`)

	form = employeeForm("E002", "Johnny", "Roe", "john@x.com")
	page := b.follow(b.post("/hrm/employees/2/edit", form), "/hrm/employees")
	assert.Contains(t, page, "Employee updated successfully.")
	// The checkbox was left unticked, so the employee is now inactive.
	assert.NotContains(t, page, "Johnny")
	assert.Contains(t, b.get("/hrm/employees?show=all").Body.String(), "Johnny")
}

func TestEditMissingRecordRedirectsToList(t *testing.T) {
	b := newBrowser(t)
	for _, c := range []struct{ path, list, notice string }{
		{"/hrm/employees/99/edit", "/hrm/employees", "Employee not found."},
		{"/pm/clients/99/edit", "/pm/clients", "Client not found."},
		{"/pm/projects/99/edit", "/pm/projects", "Project not found."},
		{"/pm/tasks/99/edit", "/pm/tasks", "Task not found."},
		{"/pm/projects/99/members", "/pm/projects", "Project not found."},
	} {
		page := b.follow(b.get(c.path), c.list)
		assert.Contains(t, page, c.notice, c.path)
	}
}

func TestMalformedInput(t *testing.T) {
	b := newBrowser(t)
	assert.Equal(t, http.StatusNotFound, b.get("/hrm/employees/abc/edit").Code)

	form := employeeForm("E001", "Jane", "Doe", "jane@x.com")
	form.Del("email")
	rr := b.post("/hrm/employees/add", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "email is required")

	form = employeeForm("E001", "Jane", "Doe", "jane@x.com")
	form.Set("department_id", "engineering")
	assert.Equal(t, http.StatusBadRequest, b.post("/hrm/employees/add", form).Code)

	form = employeeForm("E001", "Jane", "Doe", "jane@x.com")
	form.Set("hire_date", "15/01/2024")
	assert.Equal(t, http.StatusBadRequest, b.post("/hrm/employees/add", form).Code)
}

func TestClientLifecycle(t *testing.T) {
	b := newBrowser(t)
	page := b.follow(b.post("/pm/clients/add", url.Values{"client_name": {" Acme "}, "contact_email": {"ops@acme.test"}}), "/pm/clients")
	assert.Contains(t, page, "Client created successfully.")
	assert.Contains(t, page, "ops@acme.test")

	rr := b.post("/pm/clients/add", url.Values{"client_name": {"Acme"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Client name already exists. Please choose a unique name.")

	page = b.follow(b.post("/pm/clients/1/edit", url.Values{"client_name": {"Acme Corp"}, "is_active": {"1"}}), "/pm/clients")
	assert.Contains(t, page, "Acme Corp")

	page = b.follow(b.post("/pm/clients/1/disable", nil), "/pm/clients")
	assert.Contains(t, page, "Client disabled (soft delete).")
	assert.NotContains(t, page, "Acme Corp")
}

func TestDuplicateProjectCodeWarns(t *testing.T) {
	b := newBrowser(t)
	seedProject(t, b)
	rr := b.post("/pm/projects/add", url.Values{
		"client_id":    {"1"},
		"project_code": {"P001"},
		"project_name": {"Again"},
		"start_date":   {"2024-02-01"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Project code already exists. Please use a unique project code.")
}

func TestMembership(t *testing.T) {
	b := newBrowser(t)
	seedProject(t, b)

	page := b.follow(b.post("/pm/projects/1/members", url.Values{"employee_id": {"1"}}), "/pm/projects/1/members")
	assert.Contains(t, page, "Employee assigned to project.")
	assert.Contains(t, page, "/pm/projects/1/members/1/remove")

	rr := b.post("/pm/projects/1/members", url.Values{"employee_id": {"1"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "That employee is already assigned to this project.")
	assert.Equal(t, 1, strings.Count(rr.Body.String(), "/members/1/remove"))

	page = b.follow(b.post("/pm/projects/1/members/1/remove", nil), "/pm/projects/1/members")
	assert.Contains(t, page, "Employee removed from project.")
	assert.NotContains(t, page, "/members/1/remove")

	page = b.follow(b.post("/pm/projects/1/members/42/remove", nil), "/pm/projects/1/members")
	assert.Contains(t, page, "Employee removed from project.")
}

func TestAssignToMissingProjectWritesNothing(t *testing.T) {
	b := newBrowser(t)
	b.follow(b.post("/hrm/employees/add", employeeForm("E001", "Jane", "Doe", "jane@x.com")), "/hrm/employees")

	page := b.follow(b.post("/pm/projects/999/members", url.Values{"employee_id": {"1"}}), "/pm/projects")
	assert.Contains(t, page, "Project not found.")
	assert.NotContains(t, page, "Employee assigned to project.")

	var n int64
	require.NoError(t, b.db.Model(&models.ProjectMember{}).Where("project_id = ?", 999).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTaskForMissingProjectIsRejected(t *testing.T) {
	b := newBrowser(t)
	rr := b.post("/pm/tasks/add", url.Values{"project_id": {"999"}, "task_name": {"Orphan"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Error creating task: ")

	var n int64
	require.NoError(t, b.db.Model(&models.Task{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTaskDisableHonoursLocalNext(t *testing.T) {
	b := newBrowser(t)
	seedProject(t, b)
	for i := 0; i < 2; i++ {
		b.follow(b.post("/pm/tasks/add", url.Values{"project_id": {"1"}, "task_name": {fmt.Sprintf("task %d", i)}}), "/pm/tasks?project_id=1")
	}

	page := b.follow(b.post("/pm/tasks/1/disable", url.Values{"next": {"/pm/tasks?project_id=1&show=all"}}), "/pm/tasks?project_id=1&show=all")
	assert.Contains(t, page, "Task disabled (soft delete).")
	assert.Contains(t, page, "task 0")

	rr := b.post("/pm/tasks/2/disable", url.Values{"next": {"//evil.example/phish"}})
	assert.Equal(t, "/pm/tasks", rr.Header().Get("Location"))

	page = b.get("/pm/tasks").Body.String()
	assert.NotContains(t, page, "task 0")
	assert.NotContains(t, page, "task 1")
}

func TestTaskListIgnoresNonNumericProject(t *testing.T) {
	b := newBrowser(t)
	seedProject(t, b)
	b.follow(b.post("/pm/tasks/add", url.Values{"project_id": {"1"}, "task_name": {"Design"}}), "/pm/tasks?project_id=1")

	rr := b.get("/pm/tasks?project_id=abc")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Design")

	rr = b.get("/pm/tasks?project_id=7")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "Design")
}

func TestTaskEditMovesProject(t *testing.T) {
	b := newBrowser(t)
	seedProject(t, b)
	b.follow(b.post("/pm/projects/add", url.Values{
		"client_id": {"1"}, "project_code": {"P002"}, "project_name": {"Billing"}, "start_date": {"2024-04-01"},
	}), "/pm/projects")
	b.follow(b.post("/pm/tasks/add", url.Values{"project_id": {"1"}, "task_name": {"Migrate"}}), "/pm/tasks?project_id=1")

	page := b.follow(b.post("/pm/tasks/1/edit", url.Values{
		"project_id": {"2"}, "task_name": {"Migrate"}, "task_status": {"Done"}, "is_active": {"1"},
	}), "/pm/tasks?project_id=2")
	assert.Contains(t, page, "Task updated successfully.")
	assert.Contains(t, page, "Migrate")
	assert.Contains(t, page, "Done")
}
