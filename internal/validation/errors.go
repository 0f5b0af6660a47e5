package validation

import (
	"sort"
	"strings"
)

// Errors maps a field name to its messages. It is the single error surface for
// both local rule failures and field errors returned by the API.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		for _, m := range messages {
			e.Add(field, m)
		}
	}
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Field returns the first message for field, or "".
func (e Errors) Field(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], ", "))
	}
	return strings.Join(parts, "; ")
}

// OrNil returns nil for an empty set so callers can return it as an error directly.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// New builds a single-field error.
func New(field, message string) Errors {
	return Errors{field: {message}}
}
