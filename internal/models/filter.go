package models

// Show selects which rows a list view returns.
type Show string

const (
	ShowActive Show = "active"
	ShowAll    Show = "all"
)

// ParseShow maps the ?show= query value. An absent value means active;
// any value other than "active" lists every row.
func ParseShow(raw string) Show {
	if raw == "" || raw == string(ShowActive) {
		return ShowActive
	}
	return ShowAll
}

// ActiveOnly reports whether the list must be restricted to active rows.
func (s Show) ActiveOnly() bool { return s == ShowActive }

// TaskFilter narrows the task board.
type TaskFilter struct {
	ProjectID *uint
	Show      Show
}

// All returns every model managed by the schema, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Department{},
		&JobTitle{},
		&Employee{},
		&Client{},
		&Project{},
		&ProjectMember{},
		&Task{},
	}
}
