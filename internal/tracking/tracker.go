package tracking

import (
	"time"

	"github.com/standardbeagle/scour/internal/diag"
)

// Tracker records the token footprint of one finished invocation.
// originalCmd is the full search the user would have run raw, proxyCmd is
// what actually ran, raw is the uncondensed transcript, rendered is the
// output that was printed and elapsed is how long the invocation took.
type Tracker interface {
	Track(originalCmd, proxyCmd, raw, rendered string, elapsed time.Duration)
}

// NoopTracker discards everything. Used when tracking is disabled.
type NoopTracker struct{}

// Track implements Tracker.
func (NoopTracker) Track(_, _, _, _ string, _ time.Duration) {}

// StoreTracker writes records to a Store.
type StoreTracker struct {
	store *Store
}

// NewStoreTracker wraps a store as a Tracker.
func NewStoreTracker(store *Store) *StoreTracker {
	return &StoreTracker{store: store}
}

// Track implements Tracker. Failures are logged at diagnostic level and
// otherwise ignored.
func (t *StoreTracker) Track(originalCmd, proxyCmd, raw, rendered string, elapsed time.Duration) {
	input := EstimateTokens(raw)
	output := EstimateTokens(rendered)
	saved := input - output
	if saved < 0 {
		saved = 0
	}

	err := t.store.Insert(Record{
		Hash:         InvocationHash(proxyCmd),
		Command:      originalCmd,
		ProxyCommand: proxyCmd,
		InputTokens:  input,
		OutputTokens: output,
		SavedTokens:  saved,
		Duration:     elapsed,
	})
	if err != nil {
		diag.Logf(1, "tracking: %v", err)
	}
}

// TimedExecution couples a tracker with a start time so the recorded
// duration covers the whole invocation.
type TimedExecution struct {
	tracker Tracker
	started time.Time
}

// StartTimed begins a timed execution against the given store. A nil store
// yields a no-op execution.
func StartTimed(store *Store) *TimedExecution {
	te := &TimedExecution{tracker: NoopTracker{}, started: time.Now()}
	if store != nil {
		te.tracker = NewStoreTracker(store)
	}
	return te
}

// Track forwards to the underlying tracker with the elapsed time since
// StartTimed.
func (te *TimedExecution) Track(originalCmd, proxyCmd, raw, rendered string) {
	te.tracker.Track(originalCmd, proxyCmd, raw, rendered, time.Since(te.started))
}
