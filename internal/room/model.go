package room

import (
	"net/http"
	"time"

	"github.com/roomdesk/meeting-room-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrCodeTaken     = apperror.New(http.StatusConflict, "room code already in use")
	ErrCodeRequired  = apperror.New(http.StatusBadRequest, "room code is required")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "room name is required")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid room status")
)

// Status describes the physical state of a room. It is informational and
// does not gate booking creation; availability for a time window is a
// booking concern.
type Status string

const (
	StatusAvailable        Status = "Available"
	StatusUnderMaintenance Status = "UnderMaintenance"
	StatusOccupied         Status = "Occupied"
)

// ParseStatus maps a wire string onto a known room status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAvailable, StatusUnderMaintenance, StatusOccupied:
		return Status(s), true
	}
	return "", false
}

// Room is a bookable meeting room, identified by a unique code.
type Room struct {
	ID          int64
	Code        string
	Name        string
	Capacity    int
	Location    string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	Search   string
	Page     int
	PageSize int
}
