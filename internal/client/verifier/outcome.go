package verifier

import "fmt"

// RejectionMessage is shown for every Rejected outcome, whatever the cause.
const RejectionMessage = "The email and password you entered did not match our records. Please double-check and try again."

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateAuthenticated
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type OutcomeKind int

const (
	Pending OutcomeKind = iota
	Authenticated
	Rejected
)

func (k OutcomeKind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the externally observable result of the flow. Identity is set
// only for Authenticated.
type Outcome struct {
	Kind     OutcomeKind
	Identity string
}

func (o Outcome) String() string {
	if o.Kind == Authenticated {
		return fmt.Sprintf("%s(%s)", o.Kind, o.Identity)
	}
	return o.Kind.String()
}

// Reason records why the last attempt ended the way it did.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotFound
	ReasonMismatch
	ReasonTransportFailure
	ReasonSessionFailure
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotFound:
		return "not_found"
	case ReasonMismatch:
		return "mismatch"
	case ReasonTransportFailure:
		return "transport_failure"
	case ReasonSessionFailure:
		return "session_failure"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// outcomeByReason maps each failure cause to what the screen sees. All of
// them collapse to Rejected; giving one its own outcome is a change here.
var outcomeByReason = map[Reason]OutcomeKind{
	ReasonNotFound:         Rejected,
	ReasonMismatch:         Rejected,
	ReasonTransportFailure: Rejected,
	ReasonSessionFailure:   Rejected,
}

func outcomeFor(r Reason) OutcomeKind {
	if k, ok := outcomeByReason[r]; ok {
		return k
	}
	return Rejected
}
