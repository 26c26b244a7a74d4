package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted,
}

func TestTransitionTable(t *testing.T) {
	legal := map[Status][]Status{
		StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
		StatusApproved:  {StatusCompleted, StatusCancelled},
		StatusRejected:  {},
		StatusCancelled: {},
		StatusCompleted: {},
	}

	// transition succeeds iff requested is in the legal-next set, checked
	// over every (current, requested) pair.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			inSet := false
			for _, s := range legal[from] {
				if s == to {
					inSet = true
				}
			}

			entry, err := Transition(from, string(to), "")
			if inSet {
				require.NoError(t, err, "%s -> %s should be legal", from, to)
				require.NotNil(t, entry.OldStatus)
				assert.Equal(t, from, *entry.OldStatus)
				assert.Equal(t, to, entry.NewStatus)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s should be illegal", from, to)
			}
		}
	}
}

func TestTransitionEmptyStatus(t *testing.T) {
	for _, requested := range []string{"", "   "} {
		_, err := Transition(StatusPending, requested, "")
		assert.ErrorIs(t, err, ErrNoStatusSelected)
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	_, err := Transition(StatusPending, "Archived", "")
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransitionTrimsNotes(t *testing.T) {
	entry, err := Transition(StatusPending, "Rejected", "  room unavailable  ")
	require.NoError(t, err)
	assert.Equal(t, "room unavailable", entry.Notes)

	entry, err = Transition(StatusPending, "Approved", "   ")
	require.NoError(t, err)
	assert.Empty(t, entry.Notes)
}

func TestTerminalStatusesHaveNoNextStates(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCancelled, StatusCompleted} {
		assert.Empty(t, NextStatuses(s), "%s is terminal", s)
	}
	assert.ElementsMatch(t,
		[]Status{StatusApproved, StatusRejected, StatusCancelled},
		NextStatuses(StatusPending))
	assert.ElementsMatch(t,
		[]Status{StatusCompleted, StatusCancelled},
		NextStatuses(StatusApproved))
}

func TestCanEditFieldsOnlyWhilePending(t *testing.T) {
	for _, s := range allStatuses {
		assert.Equal(t, s == StatusPending, CanEditFields(s), "status %s", s)
		assert.Equal(t, s == StatusPending, CanDelete(s), "status %s", s)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		parsed, ok := ParseStatus(string(s))
		require.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	_, ok := ParseStatus("pending") // case matters on the wire
	assert.False(t, ok)
}
