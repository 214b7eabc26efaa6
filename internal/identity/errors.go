package identity

import "fmt"

// ErrorKind classifies identity cache failures so callers can branch on
// the kind instead of matching message text.
type ErrorKind int

const (
	// KindMissing means no identity is stored.
	KindMissing ErrorKind = iota
	// KindInvalid means the stored content could not be parsed.
	KindInvalid
	// KindIncomplete means a required field is missing or empty.
	KindIncomplete
)

// String names the kind for messages.
func (k ErrorKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindInvalid:
		return "invalid"
	case KindIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// Error is a tagged identity cache failure.
type Error struct {
	Kind   ErrorKind
	Reason string
}

// Error renders the kind and reason.
func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s identity: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s identity", e.Kind)
}
