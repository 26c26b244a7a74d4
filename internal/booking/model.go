package booking

import (
	"net/http"
	"time"

	"github.com/roomdesk/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound      = apperror.New(http.StatusBadRequest, "room does not exist")
	ErrNotEditable       = apperror.New(http.StatusConflict, "only pending bookings can be edited")
	ErrNotDeletable      = apperror.New(http.StatusConflict, "only pending bookings can be deleted")
	ErrNoStatusSelected  = apperror.New(http.StatusBadRequest, "no status selected")
	ErrIllegalTransition = apperror.New(http.StatusBadRequest, "status transition not allowed")
	ErrStaleState        = apperror.New(http.StatusConflict, "booking status has changed, refresh and try again")
)

// Booking is a reservation of a room for a time window, carrying borrower
// contact info and a moderation status.
type Booking struct {
	ID            int64
	RoomID        int64
	RoomName      string
	RoomCode      string
	BorrowerName  string
	BorrowerEmail string
	BorrowerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HistoryEntry is one immutable audit record of a status change.
// OldStatus is nil only for the synthetic entry written at creation.
type HistoryEntry struct {
	ID        int64
	BookingID int64
	OldStatus *Status
	NewStatus Status
	Notes     string
	ChangedAt time.Time
	ChangedBy string
}

// Filter defines parameters for listing bookings.
type Filter struct {
	RoomID    int64
	Status    string
	StartDate *time.Time // bookings whose window ends at or after this time
	EndDate   *time.Time // bookings whose window starts at or before this time
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}
