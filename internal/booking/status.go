package booking

import "strings"

// Status is the moderation state of a booking. The five values are the exact
// literals exchanged on the wire.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// nextStatuses is the full transition table. Every status has an entry;
// an empty set marks a terminal status.
var nextStatuses = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCompleted, StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ParseStatus maps a wire string onto a known status.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := nextStatuses[st]
	return st, ok
}

// NextStatuses returns the statuses a booking in status s may move to.
// The returned slice is a copy and is empty for terminal statuses.
func NextStatuses(s Status) []Status {
	next := nextStatuses[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range nextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanEditFields reports whether a booking's fields may still be edited.
func CanEditFields(s Status) bool {
	return s == StatusPending
}

// CanDelete reports whether a booking may still be deleted.
func CanDelete(s Status) bool {
	return s == StatusPending
}

// Transition decides whether a booking in status current may move to the
// requested status and, if so, returns the audit entry for the change.
// ChangedAt and ChangedBy are assigned by the store when the entry is
// persisted, not here.
func Transition(current Status, requested string, notes string) (*HistoryEntry, error) {
	if strings.TrimSpace(requested) == "" {
		return nil, ErrNoStatusSelected
	}

	next, ok := ParseStatus(requested)
	if !ok || !CanTransition(current, next) {
		return nil, ErrIllegalTransition
	}

	old := current
	return &HistoryEntry{
		OldStatus: &old,
		NewStatus: next,
		Notes:     strings.TrimSpace(notes),
	}, nil
}
