package http

import (
	"time"

	"github.com/roomdesk/meeting-room-backend/internal/room"
)

type CreateRoomBody struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoomBody struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required,oneof=Available UnderMaintenance Occupied"`
}

type RoomResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Description: r.Description,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}
