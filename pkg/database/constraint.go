package database

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniqueFailedOn = "constraint failed:"
)

var (
	pgDetailKey = regexp.MustCompile(`Key \(([^)]+)\)=`)
	mysqlKey    = regexp.MustCompile(`for key '([^']+)'`)
)

// UniqueViolation describes a write rejected by a unique key or a primary key.
// Constraint and Columns are filled from whatever the driver exposes; either
// may be empty.
type UniqueViolation struct {
	Constraint string
	Columns    []string
	Message    string
}

// Involves reports whether the violated key covers field. Column lists are
// authoritative; constraint names are consulted next, and the raw message
// only when the driver provided neither.
func (v *UniqueViolation) Involves(field string) bool {
	if len(v.Columns) > 0 {
		for _, c := range v.Columns {
			if c == field {
				return true
			}
		}
		return false
	}
	if v.Constraint != "" {
		return strings.Contains(v.Constraint, field)
	}
	return strings.Contains(v.Message, field)
}

// AsUniqueViolation extracts a UniqueViolation from a PostgreSQL, MySQL or
// SQLite driver error.
func AsUniqueViolation(err error) (*UniqueViolation, bool) {
	if err == nil {
		return nil, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil, false
		}
		v := &UniqueViolation{Constraint: pgErr.ConstraintName, Message: pgErr.Message}
		if m := pgDetailKey.FindStringSubmatch(pgErr.Detail); m != nil {
			v.Columns = splitColumns(m[1])
		}
		return v, true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number != mysqlDuplicateEntry {
			return nil, false
		}
		v := &UniqueViolation{Message: myErr.Message}
		if m := mysqlKey.FindStringSubmatch(myErr.Message); m != nil {
			key := m[1]
			if i := strings.LastIndex(key, "."); i >= 0 {
				key = key[i+1:]
			}
			v.Constraint = key
		}
		return v, true
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code != sqlite3.ErrConstraint {
			return nil, false
		}
		if liteErr.ExtendedCode != sqlite3.ErrConstraintUnique && liteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return nil, false
		}
		msg := liteErr.Error()
		v := &UniqueViolation{Message: msg}
		// "UNIQUE constraint failed: employees.email, employees.phone"
		if i := strings.Index(msg, sqliteUniqueFailedOn); i >= 0 {
			v.Columns = splitColumns(msg[i+len(sqliteUniqueFailedOn):])
		}
		return v, true
	}

	return nil, false
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if i := strings.LastIndex(p, "."); i >= 0 {
			p = p[i+1:]
		}
		p = strings.Trim(p, `"`+"`")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
