package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/staffdesk/admin/internal/models"
	"github.com/staffdesk/admin/pkg/database"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"github.com/staffdesk/admin/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Nop()
	os.Exit(m.Run())
}

type repoCase struct {
	name string
	run  func(t *testing.T, f *fixture)
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestRepositoriesSQLite(t *testing.T) {
	for _, c := range repositoryCases() {
		t.Run(c.name, func(t *testing.T) {
			c.run(t, newFixture(t, openSQLite(t)))
		})
	}
}

type fixture struct {
	ctx       context.Context
	db        *gorm.DB
	employees EmployeeRepository
	clients   ClientRepository
	projects  ProjectRepository
	members   MemberRepository
	tasks     TaskRepository
	lookups   LookupRepository
	deptID    uint
	titleID   uint
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, SeedLookups(ctx, db))

	f := &fixture{
		ctx:       ctx,
		db:        db,
		employees: NewEmployeeRepository(db),
		clients:   NewClientRepository(db),
		projects:  NewProjectRepository(db),
		members:   NewMemberRepository(db),
		tasks:     NewTaskRepository(db),
		lookups:   NewLookupRepository(db),
	}
	depts, err := f.lookups.ActiveDepartments(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, depts)
	titles, err := f.lookups.ActiveJobTitles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, titles)
	f.deptID, f.titleID = depts[0].ID, titles[0].ID
	return f
}

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (f *fixture) employee(t *testing.T, number, first, last, email string) *models.Employee {
	t.Helper()
	e := &models.Employee{
		EmployeeNumber: number,
		FirstName:      first,
		LastName:       last,
		Email:          email,
		HireDate:       date(2023, time.March, 1),
		DepartmentID:   f.deptID,
		JobTitleID:     f.titleID,
		IsActive:       true,
	}
	require.NoError(t, f.employees.Create(f.ctx, e))
	return e
}

func (f *fixture) client(t *testing.T, name string) *models.Client {
	t.Helper()
	c := &models.Client{ClientName: name, IsActive: true}
	require.NoError(t, f.clients.Create(f.ctx, c))
	return c
}

func (f *fixture) project(t *testing.T, code string, clientID uint) *models.Project {
	t.Helper()
	p := &models.Project{
		ClientID:    clientID,
		ProjectCode: code,
		ProjectName: "Project " + code,
		StartDate:   date(2024, time.January, 1),
		Status:      models.DefaultProjectStatus,
		IsActive:    true,
	}
	require.NoError(t, f.projects.Create(f.ctx, p))
	return p
}

func (f *fixture) task(t *testing.T, name string, projectID uint, employeeID *uint, due *datatypes.Date) *models.Task {
	t.Helper()
	tk := &models.Task{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		TaskName:   name,
		TaskStatus: models.DefaultTaskStatus,
		DueDate:    due,
		IsActive:   true,
	}
	require.NoError(t, f.tasks.Create(f.ctx, tk))
	return tk
}

func employeeNumbers(rows []models.EmployeeRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EmployeeNumber)
	}
	return out
}

func taskNames(rows []models.TaskRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.TaskName)
	}
	return out
}

func repositoryCases() []repoCase {
	return []repoCase{
		{"employee list orders by surname and filters active", func(t *testing.T, f *fixture) {
			f.employee(t, "E002", "Zoe", "Young", "zoe@x.com")
			f.employee(t, "E001", "Jane", "Doe", "jane@x.com")
			inactive := f.employee(t, "E003", "Adam", "Doe", "adam@x.com")
			require.NoError(t, f.employees.Disable(f.ctx, inactive.ID))

			active, err := f.employees.List(f.ctx, models.ShowActive)
			require.NoError(t, err)
			assert.Equal(t, []string{"E001", "E002"}, employeeNumbers(active))
			assert.NotEmpty(t, active[0].DepartmentName)
			assert.NotEmpty(t, active[0].TitleName)

			all, err := f.employees.List(f.ctx, models.ShowAll)
			require.NoError(t, err)
			assert.Equal(t, []string{"E003", "E001", "E002"}, employeeNumbers(all))
		}},
		{"employee duplicate number is rejected and prior row kept", func(t *testing.T, f *fixture) {
			orig := f.employee(t, "E001", "Jane", "Doe", "jane@x.com")

			dup := &models.Employee{
				EmployeeNumber: "E001", FirstName: "John", LastName: "Roe", Email: "john@x.com",
				HireDate: date(2024, time.May, 2), DepartmentID: f.deptID, JobTitleID: f.titleID, IsActive: true,
			}
			err := f.employees.Create(f.ctx, dup)
			require.Error(t, err)
			assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))
			field, _ := appErr.MetaString(err, MetaField)
			assert.Equal(t, FieldEmployeeNumber, field)

			var got models.Employee
			require.NoError(t, f.employees.GetByID(f.ctx, orig.ID, &got))
			assert.Equal(t, "Jane", got.FirstName)
			assert.Equal(t, "jane@x.com", got.Email)

			all, err := f.employees.List(f.ctx, models.ShowAll)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		}},
		{"employee duplicate email is reported on create and update", func(t *testing.T, f *fixture) {
			f.employee(t, "E001", "Jane", "Doe", "jane@x.com")
			other := f.employee(t, "E002", "John", "Roe", "john@x.com")

			err := f.employees.Create(f.ctx, &models.Employee{
				EmployeeNumber: "E009", FirstName: "J", LastName: "D", Email: "jane@x.com",
				HireDate: date(2024, time.May, 2), DepartmentID: f.deptID, JobTitleID: f.titleID, IsActive: true,
			})
			require.Error(t, err)
			field, _ := appErr.MetaString(err, MetaField)
			assert.Equal(t, FieldEmail, field)

			err = f.employees.Update(f.ctx, other.ID, map[string]any{"email": "jane@x.com"})
			require.Error(t, err)
			assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))
			field, _ = appErr.MetaString(err, MetaField)
			assert.Equal(t, FieldEmail, field)

			var got models.Employee
			require.NoError(t, f.employees.GetByID(f.ctx, other.ID, &got))
			assert.Equal(t, "john@x.com", got.Email)
		}},
		{"employee update persists zero values", func(t *testing.T, f *fixture) {
			phone := "555-0100"
			e := f.employee(t, "E001", "Jane", "Doe", "jane@x.com")
			require.NoError(t, f.employees.Update(f.ctx, e.ID, map[string]any{"phone": &phone}))
			require.NoError(t, f.employees.Update(f.ctx, e.ID, map[string]any{"phone": nil, "is_active": false}))

			var got models.Employee
			require.NoError(t, f.employees.GetByID(f.ctx, e.ID, &got))
			assert.Nil(t, got.Phone)
			assert.False(t, got.IsActive)
		}},
		{"get by id reports not found", func(t *testing.T, f *fixture) {
			var e models.Employee
			err := f.employees.GetByID(f.ctx, 4242, &e)
			assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

			var c models.Client
			err = f.clients.GetByID(f.ctx, 4242, &c)
			assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		}},
		{"client duplicate name and soft delete", func(t *testing.T, f *fixture) {
			acme := f.client(t, "Acme")
			f.client(t, "Globex")

			err := f.clients.Create(f.ctx, &models.Client{ClientName: "Acme", IsActive: true})
			require.Error(t, err)
			field, _ := appErr.MetaString(err, MetaField)
			assert.Equal(t, FieldClientName, field)

			require.NoError(t, f.clients.Disable(f.ctx, acme.ID))
			active, err := f.clients.List(f.ctx, models.ShowActive)
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, "Globex", active[0].ClientName)

			all, err := f.clients.List(f.ctx, models.ShowAll)
			require.NoError(t, err)
			assert.Len(t, all, 2)
			assert.False(t, all[0].CreatedAt.IsZero())
		}},
		{"project list joins client and rejects duplicate code", func(t *testing.T, f *fixture) {
			acme := f.client(t, "Acme")
			f.project(t, "P002", acme.ID)
			p1 := f.project(t, "P001", acme.ID)

			err := f.projects.Create(f.ctx, &models.Project{
				ClientID: acme.ID, ProjectCode: "P001", ProjectName: "Again",
				StartDate: date(2024, time.June, 1), Status: models.DefaultProjectStatus, IsActive: true,
			})
			require.Error(t, err)
			field, _ := appErr.MetaString(err, MetaField)
			assert.Equal(t, FieldProjectCode, field)

			rows, err := f.projects.List(f.ctx, models.ShowActive)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, "P001", rows[0].ProjectCode)
			assert.Equal(t, "Acme", rows[0].ClientName)
			assert.Nil(t, rows[0].EndDate)

			h, err := f.projects.Header(f.ctx, p1.ID)
			require.NoError(t, err)
			assert.Equal(t, "Acme", h.ClientName)

			_, err = f.projects.Header(f.ctx, 9999)
			assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

			require.NoError(t, f.projects.Disable(f.ctx, p1.ID))
			opts, err := f.projects.ActiveOptions(f.ctx)
			require.NoError(t, err)
			require.Len(t, opts, 1)
			assert.Equal(t, "P002", opts[0].ProjectCode)
		}},
		{"membership assign twice keeps one row", func(t *testing.T, f *fixture) {
			p := f.project(t, "P001", f.client(t, "Acme").ID)
			e := f.employee(t, "E001", "Jane", "Doe", "jane@x.com")

			require.NoError(t, f.members.Assign(f.ctx, p.ID, e.ID))
			err := f.members.Assign(f.ctx, p.ID, e.ID)
			require.Error(t, err)
			assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))

			members, err := f.members.ListMembers(f.ctx, p.ID)
			require.NoError(t, err)
			require.Len(t, members, 1)
			assert.Equal(t, "E001", members[0].EmployeeNumber)
		}},
		{"membership remove of absent pair is a no-op", func(t *testing.T, f *fixture) {
			p := f.project(t, "P001", f.client(t, "Acme").ID)
			jane := f.employee(t, "E001", "Jane", "Doe", "jane@x.com")
			john := f.employee(t, "E002", "John", "Abbot", "john@x.com")
			require.NoError(t, f.members.Assign(f.ctx, p.ID, jane.ID))
			require.NoError(t, f.members.Assign(f.ctx, p.ID, john.ID))

			require.NoError(t, f.members.Remove(f.ctx, p.ID, 9999))
			members, err := f.members.ListMembers(f.ctx, p.ID)
			require.NoError(t, err)
			require.Len(t, members, 2)
			assert.Equal(t, "Abbot", members[0].LastName)

			require.NoError(t, f.members.Remove(f.ctx, p.ID, john.ID))
			members, err = f.members.ListMembers(f.ctx, p.ID)
			require.NoError(t, err)
			require.Len(t, members, 1)
			assert.Equal(t, "Doe", members[0].LastName)
		}},
		{"task list filters and orders undated tasks last", func(t *testing.T, f *fixture) {
			acme := f.client(t, "Acme")
			p1 := f.project(t, "P001", acme.ID)
			p2 := f.project(t, "P002", acme.ID)
			e := f.employee(t, "E001", "Jane", "Doe", "jane@x.com")

			late, early := date(2024, time.December, 1), date(2024, time.February, 1)
			f.task(t, "undated", p1.ID, nil, nil)
			f.task(t, "late", p1.ID, &e.ID, &late)
			f.task(t, "early", p1.ID, nil, &early)
			f.task(t, "other project", p2.ID, nil, nil)
			gone := f.task(t, "disabled", p1.ID, nil, nil)
			require.NoError(t, f.tasks.Disable(f.ctx, gone.ID))

			rows, err := f.tasks.List(f.ctx, models.TaskFilter{ProjectID: &p1.ID, Show: models.ShowActive})
			require.NoError(t, err)
			assert.Equal(t, []string{"early", "late", "undated"}, taskNames(rows))
			require.NotNil(t, rows[1].LastName)
			assert.Equal(t, "Doe", *rows[1].LastName)
			assert.Nil(t, rows[0].LastName)

			rows, err = f.tasks.List(f.ctx, models.TaskFilter{Show: models.ShowAll})
			require.NoError(t, err)
			assert.Equal(t, []string{"early", "late", "disabled", "undated", "other project"}, taskNames(rows))
		}},
		{"task survives assignee being disabled", func(t *testing.T, f *fixture) {
			p := f.project(t, "P001", f.client(t, "Acme").ID)
			e := f.employee(t, "E001", "Jane", "Doe", "jane@x.com")
			f.task(t, "build", p.ID, &e.ID, nil)

			require.NoError(t, f.employees.Disable(f.ctx, e.ID))

			rows, err := f.tasks.List(f.ctx, models.TaskFilter{ProjectID: &p.ID, Show: models.ShowActive})
			require.NoError(t, err)
			assert.Equal(t, []string{"build"}, taskNames(rows))

			candidates, err := f.employees.ActiveSummaries(f.ctx)
			require.NoError(t, err)
			assert.Empty(t, candidates)
		}},
		{"seed lookups is idempotent", func(t *testing.T, f *fixture) {
			require.NoError(t, SeedLookups(f.ctx, f.db))
			depts, err := f.lookups.ActiveDepartments(f.ctx)
			require.NoError(t, err)
			assert.Len(t, depts, len(DefaultDepartments))
			assert.Equal(t, "Engineering", depts[0].Name)
		}},
	}
}
