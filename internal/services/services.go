package services

import (
	"strings"

	"github.com/samber/lo"
)

// optional trims s and returns nil when nothing is left, so blank form
// fields are stored as NULL.
func optional(s string) *string {
	return lo.EmptyableToPtr(strings.TrimSpace(s))
}

// orDefault returns the trimmed s, or def when s is blank.
func orDefault(s, def string) string {
	return lo.CoalesceOrEmpty(strings.TrimSpace(s), def)
}

// column converts a nil pointer into an untyped nil so the driver binds NULL.
func column[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
