package http

import (
	"time"

	"github.com/roomdesk/meeting-room-backend/internal/booking"
)

// BookingBody is the create/update payload. Field presence rules are
// enforced by the validator, which collects every violation at once, so no
// binding:"required" tags here: a zero value is treated as absent.
type BookingBody struct {
	RoomID        int64      `json:"roomId"`
	BorrowerName  string     `json:"borrowerName"`
	BorrowerEmail string     `json:"borrowerEmail"`
	BorrowerPhone string     `json:"borrowerPhone"`
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	Purpose       string     `json:"purpose"`
}

func (b BookingBody) toRequest() booking.Request {
	req := booking.Request{
		RoomID:        b.RoomID,
		BorrowerName:  b.BorrowerName,
		BorrowerEmail: b.BorrowerEmail,
		BorrowerPhone: b.BorrowerPhone,
		Purpose:       b.Purpose,
	}
	if b.StartTime != nil {
		req.StartTime = *b.StartTime
	}
	if b.EndTime != nil {
		req.EndTime = *b.EndTime
	}
	return req
}

// UpdateStatusBody is the payload for a status transition request.
type UpdateStatusBody struct {
	NewStatus string `json:"newStatus"`
	Notes     string `json:"notes"`
	ChangedBy string `json:"changedBy"`
}

type BookingResponse struct {
	ID            int64     `json:"id"`
	RoomID        int64     `json:"roomId"`
	RoomName      string    `json:"roomName"`
	RoomCode      string    `json:"roomCode"`
	BorrowerName  string    `json:"borrowerName"`
	BorrowerEmail string    `json:"borrowerEmail"`
	BorrowerPhone string    `json:"borrowerPhone"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Purpose       string    `json:"purpose,omitempty"`
	Status        string    `json:"status"`
	NextStatuses  []string  `json:"nextStatuses"`
	CanEdit       bool      `json:"canEdit"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	next := booking.NextStatuses(b.Status)
	nextStr := make([]string, len(next))
	for i, s := range next {
		nextStr[i] = string(s)
	}

	return BookingResponse{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomName:      b.RoomName,
		RoomCode:      b.RoomCode,
		BorrowerName:  b.BorrowerName,
		BorrowerEmail: b.BorrowerEmail,
		BorrowerPhone: b.BorrowerPhone,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Purpose:       b.Purpose,
		Status:        string(b.Status),
		NextStatuses:  nextStr,
		CanEdit:       booking.CanEditFields(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

type HistoryResponse struct {
	ID        int64     `json:"id"`
	OldStatus *string   `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	Notes     string    `json:"notes,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy"`
}

func NewHistoryResponse(e *booking.HistoryEntry) HistoryResponse {
	resp := HistoryResponse{
		ID:        e.ID,
		NewStatus: string(e.NewStatus),
		Notes:     e.Notes,
		ChangedAt: e.ChangedAt,
		ChangedBy: e.ChangedBy,
	}
	if e.OldStatus != nil {
		old := string(*e.OldStatus)
		resp.OldStatus = &old
	}
	return resp
}
