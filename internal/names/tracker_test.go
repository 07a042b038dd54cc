package names

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(DefaultWindow)

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Seen_FirstOccurrence(t *testing.T) {
	tracker := NewTracker(DefaultWindow)

	require.False(t, tracker.Seen("Lake District Danger Area"))
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Seen_Duplicate(t *testing.T) {
	tracker := NewTracker(DefaultWindow)

	require.False(t, tracker.Seen("Lake District Danger Area"))
	require.True(t, tracker.Seen("Lake District Danger Area"))
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Seen_DistinctTitlesDontCollide(t *testing.T) {
	tracker := NewTracker(DefaultWindow)

	require.False(t, tracker.Seen("Alpha Restricted"))
	require.False(t, tracker.Seen("Bravo Restricted"))
	require.Equal(t, 2, tracker.Count())
}

func TestTracker_Seen_ExpiresOutsideWindow(t *testing.T) {
	tracker := NewTracker(20 * time.Millisecond)

	require.False(t, tracker.Seen("Transient Zone"))
	time.Sleep(60 * time.Millisecond)
	require.False(t, tracker.Seen("Transient Zone"))
}
