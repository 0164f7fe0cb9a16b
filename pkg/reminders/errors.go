package reminders

// ValidationKind discriminates why a reminder was rejected.
type ValidationKind string

const (
	KindEmptyTitle   ValidationKind = "empty_title"
	KindPastDateTime ValidationKind = "past_datetime"
)

// ValidationError is returned by Store.Add when the input is rejected.
// It is a value for the caller to surface, never fatal.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmptyTitle:
		return "reminder title must not be empty"
	case KindPastDateTime:
		return "reminder time must be in the future"
	default:
		return "invalid reminder: " + string(e.Kind)
	}
}

// IsValidation reports whether err is a ValidationError of the given kind.
func IsValidation(err error, kind ValidationKind) bool {
	verr, ok := err.(*ValidationError)
	return ok && verr.Kind == kind
}
