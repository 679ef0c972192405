package auth

// State is the session validity state owned by the Validator.
type State int

const (
	// StateUnknown is the initial state before any validation attempt.
	StateUnknown State = iota

	// StateValidating means an attempt is in flight.
	StateValidating

	// StateAuthenticated means the token was confirmed valid.
	StateAuthenticated

	// StateUnauthenticated means there is no usable session.
	StateUnauthenticated

	// StateOfflineRetry means the attempt could not be completed for
	// connectivity reasons; the token is kept and the user may retry.
	StateOfflineRetry
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateOfflineRetry:
		return "offline-retry"
	}
	return "invalid"
}

// Status is the full session state snapshot delivered to observers.
// Invariants: Authenticated implies a non-empty Token; Unauthenticated
// implies Token is empty.
type Status struct {
	State   State
	Token   string
	Offline bool
	Loading bool

	// UpdateRequired is set when the backend reported a minimum client
	// version newer than this build. The token is kept; the user is
	// expected to update and retry.
	UpdateRequired bool
}
