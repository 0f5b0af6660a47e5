package validation

// Rule is one named cross-field predicate. Check returns true when the input is acceptable.
type Rule[T any] struct {
	Name    string
	Field   string
	Message string
	Check   func(T) bool
}

// Apply runs every rule and records the failures in errs.
func Apply[T any](errs Errors, in T, rules ...Rule[T]) {
	for _, r := range rules {
		if !r.Check(in) {
			errs.Add(r.Field, r.Message)
		}
	}
}
