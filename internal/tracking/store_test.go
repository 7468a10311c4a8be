package tracking

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "nested", "usage.db"), store.Path())
}

func TestOpenStore_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	store, err := OpenStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "usage.db"), store.Path())
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("four"))
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}

func TestInvocationHash_Stable(t *testing.T) {
	a := InvocationHash("scour search auth .")
	b := InvocationHash("scour search auth .")
	c := InvocationHash("scour search session .")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestStore_InsertAndSummary(t *testing.T) {
	store := openTestStore(t)

	records := []Record{
		{Hash: "h1", Command: "grep -rn auth .", ProxyCommand: "scour search auth .", InputTokens: 1000, OutputTokens: 100, SavedTokens: 900},
		{Hash: "h2", Command: "grep -rn auth .", ProxyCommand: "scour search auth .", InputTokens: 500, OutputTokens: 100, SavedTokens: 400},
		{Hash: "h3", Command: "grep -rn session .", ProxyCommand: "scour search session .", InputTokens: 200, OutputTokens: 150, SavedTokens: 50},
	}
	for _, rec := range records {
		require.NoError(t, store.Insert(rec))
	}

	summary, err := store.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalCommands)
	assert.Equal(t, 1700, summary.TotalInput)
	assert.Equal(t, 350, summary.TotalOutput)
	assert.Equal(t, 1350, summary.TotalSaved)
	assert.InDelta(t, 79.4, summary.AvgSavingsPct, 0.1)

	require.Len(t, summary.ByCommand, 2)
	// Sorted by saved tokens, most first
	assert.Equal(t, "grep -rn auth .", summary.ByCommand[0].Command)
	assert.Equal(t, 2, summary.ByCommand[0].Count)
	assert.Equal(t, 1300, summary.ByCommand[0].Saved)

	require.NotEmpty(t, summary.ByDay)
	assert.Equal(t, 1350, summary.ByDay[0].Saved)
}

func TestStore_EmptySummary(t *testing.T) {
	store := openTestStore(t)

	summary, err := store.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalCommands)
	assert.Zero(t, summary.AvgSavingsPct)
	assert.Empty(t, summary.ByCommand)
}

func TestStore_GetRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Insert(Record{
			Hash:         "h",
			Command:      "grep -rn auth .",
			ProxyCommand: "scour search auth .",
			InputTokens:  100,
			OutputTokens: 20,
			SavedTokens:  80,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := store.GetRecent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Most recent first
	assert.True(t, recent[0].Timestamp.After(recent[1].Timestamp))
	assert.InDelta(t, 80.0, recent[0].SavingsPct, 1e-9)
}

func TestTimedExecution_NilStoreIsNoop(t *testing.T) {
	te := StartTimed(nil)
	// Must not panic or touch the filesystem
	te.Track("grep -rn x .", "scour search x .", "raw", "out")
}

// captureTracker records the last call so delegation can be asserted.
type captureTracker struct {
	calls   int
	elapsed time.Duration
}

func (c *captureTracker) Track(_, _, _, _ string, elapsed time.Duration) {
	c.calls++
	c.elapsed = elapsed
}

func TestTimedExecution_DelegatesElapsedToTracker(t *testing.T) {
	capture := &captureTracker{}
	te := &TimedExecution{tracker: capture, started: time.Now().Add(-time.Second)}

	te.Track("grep -rn auth .", "scour search auth .", "raw", "out")

	assert.Equal(t, 1, capture.calls)
	assert.GreaterOrEqual(t, capture.elapsed, time.Second)
}

func TestTimedExecution_RecordsSavings(t *testing.T) {
	store := openTestStore(t)

	te := StartTimed(store)
	raw := string(make([]byte, 4000))
	rendered := string(make([]byte, 400))
	te.Track("grep -rn auth .", "scour search auth .", raw, rendered)

	summary, err := store.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalCommands)
	assert.Equal(t, 1000, summary.TotalInput)
	assert.Equal(t, 100, summary.TotalOutput)
	assert.Equal(t, 900, summary.TotalSaved)
}

func TestStoreTracker_NeverGrowsSavingsNegative(t *testing.T) {
	store := openTestStore(t)

	tracker := NewStoreTracker(store)
	// Rendered output longer than the raw transcript
	tracker.Track("grep -rn x .", "scour search x .", "tiny", string(make([]byte, 400)), time.Millisecond)

	summary, err := store.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSaved)
}
