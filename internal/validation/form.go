package validation

import "net/url"

// Form is a raw submission: field name to one or more string values.
// It has the same shape as url.Values.
type Form map[string][]string

// FromValues wraps parsed request values.
func FromValues(v url.Values) Form {
	return Form(v)
}

// Get returns the first value for key, or "".
func (f Form) Get(key string) string {
	if vs := f[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns every value submitted for a multi-valued field.
// An absent field yields an empty, non-nil slice and a lone value a
// one-element slice.
func (f Form) Values(key string) []string {
	vs := f[key]
	out := make([]string, 0, len(vs))
	return append(out, vs...)
}

// Set replaces the values for key.
func (f Form) Set(key string, values ...string) {
	f[key] = values
}
