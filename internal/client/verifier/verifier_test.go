package verifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/client/client"
	"github.com/dmitrijs2005/storelogin/internal/client/models"
	"github.com/dmitrijs2005/storelogin/internal/client/session"
	"github.com/dmitrijs2005/storelogin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

// fakeStore serves records from a map. When entered is set every lookup
// hands a fresh release channel to the test and blocks until it is closed.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]string
	err     error
	calls   []string
	last    *models.Record

	entered chan chan struct{}
}

func (f *fakeStore) GetRecord(ctx context.Context, identifier string) (*models.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, identifier)
	f.mu.Unlock()

	if f.entered != nil {
		release := make(chan struct{})
		f.entered <- release
		<-release
	}

	if f.err != nil {
		return nil, f.err
	}
	secret, ok := f.records[identifier]
	if !ok {
		return nil, client.ErrNotFound
	}
	rec := &models.Record{Identifier: identifier, Secret: []byte(secret)}
	f.mu.Lock()
	f.last = rec
	f.mu.Unlock()
	return rec, nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingSlot struct {
	session.MemorySlot
	mu     sync.Mutex
	writes []string
	err    error
}

func (s *recordingSlot) Set(ctx context.Context, identity string) error {
	s.mu.Lock()
	s.writes = append(s.writes, identity)
	s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.MemorySlot.Set(ctx, identity)
}

func (s *recordingSlot) identity(t *testing.T) (string, bool) {
	t.Helper()
	id, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	return id, ok
}

func newGatedStore(records map[string]string) *fakeStore {
	return &fakeStore{
		records: records,
		entered: make(chan chan struct{}, 4),
	}
}

func newVerifier(store Lookup, slot session.Writer) *Verifier {
	return New(store, slot, logging.Nop())
}

func fill(v *Verifier, identifier, secret string) {
	v.SetIdentifier(identifier)
	v.SetSecret([]byte(secret))
}

func waitEntered(t *testing.T, f *fakeStore) chan struct{} {
	t.Helper()
	select {
	case release := <-f.entered:
		return release
	case <-time.After(2 * time.Second):
		t.Fatal("lookup was not issued")
		return nil
	}
}

// ---- tests ----

func TestNew_StartsIdlePending(t *testing.T) {
	v := newVerifier(&fakeStore{}, &recordingSlot{})

	assert.Equal(t, StateIdle, v.State())
	assert.Equal(t, Outcome{Kind: Pending}, v.Outcome())
	assert.Equal(t, ReasonNone, v.LastReason())
}

func TestSubmit_Scenarios(t *testing.T) {
	store := map[string]string{"a@b.com": "pw1"}

	tests := []struct {
		name       string
		identifier string
		secret     string
		storeErr   error
		want       Outcome
		wantReason Reason
		wantSlot   string
	}{
		{
			name:       "matching secret authenticates",
			identifier: "a@b.com", secret: "pw1",
			want:       Outcome{Kind: Authenticated, Identity: "a@b.com"},
			wantReason: ReasonNone,
			wantSlot:   "a@b.com",
		},
		{
			name:       "wrong secret is rejected",
			identifier: "a@b.com", secret: "wrong",
			want:       Outcome{Kind: Rejected},
			wantReason: ReasonMismatch,
		},
		{
			name:       "unknown identifier is rejected",
			identifier: "nobody@x.com", secret: "pw1",
			want:       Outcome{Kind: Rejected},
			wantReason: ReasonNotFound,
		},
		{
			name:       "transport failure is rejected",
			identifier: "a@b.com", secret: "pw1",
			storeErr:   client.ErrUnavailable,
			want:       Outcome{Kind: Rejected},
			wantReason: ReasonTransportFailure,
		},
		{
			name:       "malformed response is rejected",
			identifier: "a@b.com", secret: "pw1",
			storeErr:   client.ErrMalformedResponse,
			want:       Outcome{Kind: Rejected},
			wantReason: ReasonTransportFailure,
		},
		{
			name:       "secret is not normalised",
			identifier: "a@b.com", secret: "PW1 ",
			want:       Outcome{Kind: Rejected},
			wantReason: ReasonMismatch,
		},
		{
			name:       "empty identifier still goes to the store",
			identifier: "", secret: "",
			want:       Outcome{Kind: Rejected},
			wantReason: ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{records: store, err: tt.storeErr}
			slot := &recordingSlot{}
			v := newVerifier(fs, slot)
			fill(v, tt.identifier, tt.secret)

			got := v.Submit(context.Background())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, v.Outcome())
			assert.Equal(t, tt.wantReason, v.LastReason())
			assert.Equal(t, []string{tt.identifier}, fs.calls, "exactly one lookup")

			id, ok := slot.identity(t)
			if tt.wantSlot == "" {
				assert.False(t, ok, "slot must stay untouched")
				assert.Empty(t, slot.writes)
				assert.Equal(t, StateRejected, v.State())
			} else {
				assert.True(t, ok)
				assert.Equal(t, tt.wantSlot, id)
				assert.Equal(t, []string{tt.wantSlot}, slot.writes)
				assert.Equal(t, StateAuthenticated, v.State())
			}
		})
	}
}

func TestSubmit_AnyUnexpectedErrorIsTransportFailure(t *testing.T) {
	fs := &fakeStore{err: errors.New("rpc error: connection reset")}
	v := newVerifier(fs, &recordingSlot{})
	fill(v, "a@b.com", "pw1")

	require.Equal(t, Rejected, v.Submit(context.Background()).Kind)
	require.Equal(t, ReasonTransportFailure, v.LastReason())
}

func TestSubmit_NilRecordWithoutError(t *testing.T) {
	v := newVerifier(lookupFunc(func(context.Context, string) (*models.Record, error) { return nil, nil }), &recordingSlot{})
	fill(v, "a@b.com", "pw1")

	require.Equal(t, Outcome{Kind: Rejected}, v.Submit(context.Background()))
	require.Equal(t, ReasonTransportFailure, v.LastReason())
}

type lookupFunc func(context.Context, string) (*models.Record, error)

func (f lookupFunc) GetRecord(ctx context.Context, id string) (*models.Record, error) { return f(ctx, id) }

func TestSubmit_SessionWriteFailureRejects(t *testing.T) {
	slot := &recordingSlot{err: errors.New("disk full")}
	v := newVerifier(&fakeStore{records: map[string]string{"a@b.com": "pw1"}}, slot)
	fill(v, "a@b.com", "pw1")

	require.Equal(t, Outcome{Kind: Rejected}, v.Submit(context.Background()))
	require.Equal(t, ReasonSessionFailure, v.LastReason())
	_, ok := slot.identity(t)
	require.False(t, ok)
}

func TestSubmit_PublishesRecordIdentifier(t *testing.T) {
	// The store may canonicalise the key; the slot gets what the record says.
	canon := lookupFunc(func(_ context.Context, id string) (*models.Record, error) {
		return &models.Record{Identifier: "a@b.com", Secret: []byte("pw1")}, nil
	})
	slot := &recordingSlot{}
	v := newVerifier(canon, slot)
	fill(v, "A@B.COM", "pw1")

	require.Equal(t, Outcome{Kind: Authenticated, Identity: "a@b.com"}, v.Submit(context.Background()))
	id, _ := slot.identity(t)
	require.Equal(t, "a@b.com", id)
}

func TestSubmit_WipesSecrets(t *testing.T) {
	fs := &fakeStore{records: map[string]string{"a@b.com": "pw1"}}
	v := newVerifier(fs, &recordingSlot{})
	fill(v, "a@b.com", "pw1")

	require.Equal(t, Authenticated, v.Submit(context.Background()).Kind)

	assert.Nil(t, v.Credentials().Secret, "submitted secret must be dropped after success")
	assert.Equal(t, "a@b.com", v.Credentials().Identifier)
	assert.Nil(t, fs.last.Secret, "record secret must be wiped after comparison")
}

func TestSubmit_RejectedKeepsInputForRetry(t *testing.T) {
	fs := &fakeStore{records: map[string]string{"a@b.com": "pw1"}}
	slot := &recordingSlot{}
	v := newVerifier(fs, slot)
	fill(v, "a@b.com", "wrong")

	require.Equal(t, Rejected, v.Submit(context.Background()).Kind)
	assert.Equal(t, Credentials{Identifier: "a@b.com", Secret: []byte("wrong")}, v.Credentials())

	// Editing does not leave Rejected; only a new submission does.
	v.SetSecret([]byte("pw1"))
	assert.Equal(t, StateRejected, v.State())

	require.Equal(t, Outcome{Kind: Authenticated, Identity: "a@b.com"}, v.Submit(context.Background()))
	assert.Equal(t, ReasonNone, v.LastReason())
	assert.Len(t, fs.calls, 2)
	assert.Equal(t, []string{"a@b.com"}, slot.writes)
}

func TestSubmit_AuthenticatedIsTerminal(t *testing.T) {
	fs := &fakeStore{records: map[string]string{"a@b.com": "pw1"}}
	slot := &recordingSlot{}
	v := newVerifier(fs, slot)
	fill(v, "a@b.com", "pw1")

	first := v.Submit(context.Background())
	fill(v, "a@b.com", "wrong")
	second := v.Submit(context.Background())

	assert.Equal(t, first, second)
	assert.Len(t, fs.calls, 1)
	assert.Equal(t, []string{"a@b.com"}, slot.writes, "slot written once per successful attempt")
}

func TestSetters_FieldIndependence(t *testing.T) {
	v := newVerifier(&fakeStore{}, &recordingSlot{})

	v.SetIdentifier("a@b.com")
	v.SetSecret([]byte("pw1"))
	assert.Equal(t, Credentials{Identifier: "a@b.com", Secret: []byte("pw1")}, v.Credentials())

	v.SetSecret([]byte("pw2"))
	v.SetIdentifier("c@d.com")
	assert.Equal(t, Credentials{Identifier: "c@d.com", Secret: []byte("pw2")}, v.Credentials())

	v.SetIdentifier("")
	assert.Equal(t, []byte("pw2"), v.Credentials().Secret)
	assert.Equal(t, StateIdle, v.State(), "setters never change state")
}

func TestSetSecret_CopiesInput(t *testing.T) {
	v := newVerifier(&fakeStore{}, &recordingSlot{})
	in := []byte("pw1")
	v.SetSecret(in)
	in[0] = 'X'

	assert.Equal(t, []byte("pw1"), v.Credentials().Secret)
}

func TestSubmit_ReentrantCallIsIgnored(t *testing.T) {
	fs := newGatedStore(map[string]string{"a@b.com": "pw1"})
	slot := &recordingSlot{}
	v := newVerifier(fs, slot)
	fill(v, "a@b.com", "pw1")

	done := make(chan Outcome, 1)
	go func() { done <- v.Submit(context.Background()) }()
	release := waitEntered(t, fs)

	assert.Equal(t, StateSubmitting, v.State())
	assert.Equal(t, Outcome{Kind: Pending}, v.Outcome())
	assert.Equal(t, Outcome{Kind: Pending}, v.Submit(context.Background()), "second submit is a no-op")
	assert.Equal(t, 1, fs.callCount())

	close(release)
	assert.Equal(t, Outcome{Kind: Authenticated, Identity: "a@b.com"}, <-done)
	assert.Equal(t, 1, fs.callCount(), "exactly one lookup")
	assert.Equal(t, []string{"a@b.com"}, slot.writes)
}

func TestSubmit_UsesInputCapturedAtDispatch(t *testing.T) {
	fs := newGatedStore(map[string]string{"a@b.com": "pw1"})
	v := newVerifier(fs, &recordingSlot{})
	fill(v, "a@b.com", "pw1")

	done := make(chan Outcome, 1)
	go func() { done <- v.Submit(context.Background()) }()
	release := waitEntered(t, fs)

	// Edits during the lookup do not affect the in-flight attempt.
	v.SetSecret([]byte("changed"))
	close(release)

	assert.Equal(t, Authenticated, (<-done).Kind)
}

func TestReset_DiscardsSupersededResponse(t *testing.T) {
	fs := newGatedStore(map[string]string{"a@b.com": "pw1"})
	slot := &recordingSlot{}
	v := newVerifier(fs, slot)
	fill(v, "a@b.com", "pw1")

	done := make(chan Outcome, 1)
	go func() { done <- v.Submit(context.Background()) }()
	release := waitEntered(t, fs)

	v.Reset()
	assert.Equal(t, StateIdle, v.State())
	assert.Equal(t, Credentials{}, v.Credentials())

	close(release)
	assert.Equal(t, Outcome{Kind: Pending}, <-done)
	assert.Equal(t, Outcome{Kind: Pending}, v.Outcome(), "stale response must not alter the outcome")
	assert.Equal(t, StateIdle, v.State())
	assert.Empty(t, slot.writes, "stale success must not publish")
}

func TestReset_StaleResponseDoesNotOverrideNewerAttempt(t *testing.T) {
	fs := newGatedStore(map[string]string{"a@b.com": "pw1"})
	slot := &recordingSlot{}
	v := newVerifier(fs, slot)

	fill(v, "a@b.com", "wrong")
	first := make(chan Outcome, 1)
	go func() { first <- v.Submit(context.Background()) }()
	releaseFirst := waitEntered(t, fs)

	v.Reset()
	fill(v, "a@b.com", "pw1")
	second := make(chan Outcome, 1)
	go func() { second <- v.Submit(context.Background()) }()
	releaseSecond := waitEntered(t, fs)

	// Release the newer attempt first, then the stale one.
	close(releaseSecond)
	require.Equal(t, Outcome{Kind: Authenticated, Identity: "a@b.com"}, <-second)
	close(releaseFirst)
	require.Equal(t, Outcome{Kind: Authenticated, Identity: "a@b.com"}, <-first)

	assert.Equal(t, Outcome{Kind: Authenticated, Identity: "a@b.com"}, v.Outcome())
	assert.Equal(t, ReasonNone, v.LastReason())
	assert.Equal(t, []string{"a@b.com"}, slot.writes)
}

func TestReset_AfterRejectedAllowsFreshFlow(t *testing.T) {
	fs := &fakeStore{records: map[string]string{}}
	v := newVerifier(fs, &recordingSlot{})
	fill(v, "nobody@x.com", "pw")
	require.Equal(t, Rejected, v.Submit(context.Background()).Kind)

	v.Reset()
	assert.Equal(t, Outcome{Kind: Pending}, v.Outcome())
	assert.Equal(t, ReasonNone, v.LastReason())
}

func TestOutcomeMappingCoversEveryReason(t *testing.T) {
	for _, r := range []Reason{ReasonNotFound, ReasonMismatch, ReasonTransportFailure, ReasonSessionFailure} {
		k, ok := outcomeByReason[r]
		require.True(t, ok, "reason %s has no mapping", r)
		require.Equal(t, Rejected, k)
	}
	require.Equal(t, Rejected, outcomeFor(Reason(99)))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "state(9)", State(9).String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "authenticated(a@b.com)", Outcome{Kind: Authenticated, Identity: "a@b.com"}.String())
	assert.Equal(t, "pending", Outcome{}.String())
	assert.Equal(t, "transport_failure", ReasonTransportFailure.String())
}
