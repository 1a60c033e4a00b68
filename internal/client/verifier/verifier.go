package verifier

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/storelogin/internal/client/client"
	"github.com/dmitrijs2005/storelogin/internal/client/models"
	"github.com/dmitrijs2005/storelogin/internal/client/session"
	"github.com/dmitrijs2005/storelogin/internal/common"
	"github.com/dmitrijs2005/storelogin/internal/logging"
)

// Lookup is the record store. GetRecord must return client.ErrNotFound when
// no record exists for the identifier.
type Lookup interface {
	GetRecord(ctx context.Context, identifier string) (*models.Record, error)
}

// Credentials is what the user has typed so far. Each field holds its own
// latest edit; setting one never touches the other.
type Credentials struct {
	Identifier string
	Secret     []byte
}

type Verifier struct {
	lookup Lookup
	slot   session.Writer
	logger logging.Logger

	credsMu sync.Mutex
	creds   Credentials

	// mu serialises transitions. Reads of state and outcome go through the
	// atomics so the screen never waits on a lookup or a slot write.
	mu      sync.Mutex
	attempt uint64
	reason  Reason
	state   atomic.Int32
	outcome atomic.Pointer[Outcome]
}

func New(lookup Lookup, slot session.Writer, logger logging.Logger) *Verifier {
	v := &Verifier{
		lookup: lookup,
		slot:   slot,
		logger: logger.With("module", "verifier"),
	}
	v.publish(StateIdle, Outcome{Kind: Pending})
	return v
}

func (v *Verifier) publish(s State, o Outcome) {
	v.state.Store(int32(s))
	v.outcome.Store(&o)
}

func (v *Verifier) SetIdentifier(value string) {
	v.credsMu.Lock()
	defer v.credsMu.Unlock()
	v.creds.Identifier = value
}

// SetSecret stores a copy of value; the caller may wipe its own slice.
func (v *Verifier) SetSecret(value []byte) {
	v.credsMu.Lock()
	defer v.credsMu.Unlock()
	common.WipeByteArray(v.creds.Secret)
	v.creds.Secret = common.CloneBytes(value)
}

// Credentials returns a copy of the current input.
func (v *Verifier) Credentials() Credentials {
	v.credsMu.Lock()
	defer v.credsMu.Unlock()
	return Credentials{Identifier: v.creds.Identifier, Secret: common.CloneBytes(v.creds.Secret)}
}

func (v *Verifier) Outcome() Outcome {
	return *v.outcome.Load()
}

func (v *Verifier) State() State {
	return State(v.state.Load())
}

// LastReason is the cause behind the current outcome, ReasonNone unless the
// last completed attempt was rejected.
func (v *Verifier) LastReason() Reason {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reason
}

// Submit runs one verification attempt and returns the resulting outcome.
//
// While another attempt is in flight it returns Pending without a lookup.
// After Authenticated it returns the current outcome unchanged. If the flow
// was Reset while the lookup ran, the response is dropped and the outcome
// current at that point is returned.
func (v *Verifier) Submit(ctx context.Context) Outcome {
	v.mu.Lock()
	switch v.State() {
	case StateSubmitting:
		v.mu.Unlock()
		v.logger.Debug(ctx, "submit ignored, attempt in flight")
		return Outcome{Kind: Pending}
	case StateAuthenticated:
		v.mu.Unlock()
		return v.Outcome()
	}

	v.attempt++
	attempt := v.attempt
	v.reason = ReasonNone
	v.publish(StateSubmitting, Outcome{Kind: Pending})
	creds := v.Credentials()
	v.mu.Unlock()
	defer common.WipeByteArray(creds.Secret)

	v.logger.Debug(ctx, "looking up record", "identifier", creds.Identifier, "attempt", attempt)
	record, err := v.lookup.GetRecord(ctx, creds.Identifier)
	defer record.Wipe()

	reason := classify(record, err, creds.Secret)

	v.mu.Lock()
	defer v.mu.Unlock()

	if attempt != v.attempt {
		v.logger.Info(ctx, "discarding response of superseded attempt", "attempt", attempt, "current", v.attempt)
		return v.Outcome()
	}

	if reason == ReasonNone {
		if err := v.slot.Set(ctx, record.Identifier); err != nil {
			v.logger.Error(ctx, "session slot write failed", "error", err)
			reason = ReasonSessionFailure
		} else {
			v.forgetSecret()
			v.publish(StateAuthenticated, Outcome{Kind: Authenticated, Identity: record.Identifier})
			v.logger.Info(ctx, "login succeeded", "identifier", record.Identifier, "attempt", attempt)
			return v.Outcome()
		}
	}

	if err != nil {
		v.logger.Warn(ctx, "record lookup failed", "identifier", creds.Identifier, "error", err)
	}
	v.reason = reason
	v.publish(StateRejected, Outcome{Kind: outcomeFor(reason)})
	v.logger.Info(ctx, "login rejected", "identifier", creds.Identifier, "reason", reason.String(), "attempt", attempt)
	return v.Outcome()
}

// Reset abandons any in-flight attempt, clears the input and returns the
// flow to Idle. A pending response is discarded when it arrives.
func (v *Verifier) Reset() {
	v.mu.Lock()
	v.attempt++
	v.reason = ReasonNone
	v.publish(StateIdle, Outcome{Kind: Pending})
	v.mu.Unlock()

	v.credsMu.Lock()
	defer v.credsMu.Unlock()
	common.WipeByteArray(v.creds.Secret)
	v.creds = Credentials{}
}

func (v *Verifier) forgetSecret() {
	v.credsMu.Lock()
	defer v.credsMu.Unlock()
	common.WipeByteArray(v.creds.Secret)
	v.creds.Secret = nil
}

// classify maps a lookup result to a Reason; ReasonNone means the secrets
// match. Secrets are compared byte for byte, without normalisation.
func classify(record *models.Record, err error, secret []byte) Reason {
	switch {
	case err == nil && record == nil:
		return ReasonTransportFailure
	case err == nil:
		if subtle.ConstantTimeCompare(record.Secret, secret) == 1 {
			return ReasonNone
		}
		return ReasonMismatch
	case errors.Is(err, client.ErrNotFound):
		return ReasonNotFound
	default:
		return ReasonTransportFailure
	}
}
