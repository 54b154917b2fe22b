package types

import (
	"net/url"
	"reflect"
	"strings"
)

// Bind copies trimmed form values into the string fields of dst, a pointer
// to a struct, matching on the `form` tag. Absent keys leave "".
func Bind(values url.Values, dst any) {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" || f.Type.Kind() != reflect.String {
			continue
		}
		rv.Field(i).SetString(strings.TrimSpace(values.Get(name)))
	}
}
