package booking

import (
	"context"
	"time"
)

// RoomDirectory is the slice of the room module the booking service needs:
// only existence of the referenced room, never its availability.
type RoomDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, req Request) (*Booking, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id int64, req Request) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, requested, notes, changedBy string) (*Booking, error)
	History(ctx context.Context, id int64) ([]*HistoryEntry, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	rooms RoomDirectory
	now   func() time.Time
}

func NewService(repo Repository, rooms RoomDirectory) Service {
	return &service{
		repo:  repo,
		rooms: rooms,
		now:   time.Now,
	}
}

// NewServiceWithClock allows tests to pin the reference clock used for
// validation.
func NewServiceWithClock(repo Repository, rooms RoomDirectory, now func() time.Time) Service {
	return &service{
		repo:  repo,
		rooms: rooms,
		now:   now,
	}
}

// checkRoom verifies the referenced room exists. Room availability for the
// requested window is intentionally not checked: overlapping bookings on the
// same room are accepted, and the moderation workflow is where conflicts get
// resolved.
func (s *service) checkRoom(ctx context.Context, roomID int64) error {
	exists, err := s.rooms.Exists(ctx, roomID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRoomNotFound
	}
	return nil
}

func (s *service) Create(ctx context.Context, req Request) (*Booking, error) {
	norm, ferr := Validate(req, s.now())
	if ferr != nil {
		return nil, &ValidationError{Fields: ferr}
	}

	if err := s.checkRoom(ctx, norm.RoomID); err != nil {
		return nil, err
	}

	b := &Booking{
		RoomID:        norm.RoomID,
		BorrowerName:  norm.BorrowerName,
		BorrowerEmail: norm.BorrowerEmail,
		BorrowerPhone: norm.BorrowerPhone,
		StartTime:     norm.StartTime,
		EndTime:       norm.EndTime,
		Purpose:       norm.Purpose,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, req Request) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditFields(b.Status) {
		return nil, ErrNotEditable
	}

	norm, ferr := Validate(req, s.now())
	if ferr != nil {
		return nil, &ValidationError{Fields: ferr}
	}

	if err := s.checkRoom(ctx, norm.RoomID); err != nil {
		return nil, err
	}

	b.RoomID = norm.RoomID
	b.BorrowerName = norm.BorrowerName
	b.BorrowerEmail = norm.BorrowerEmail
	b.BorrowerPhone = norm.BorrowerPhone
	b.StartTime = norm.StartTime
	b.EndTime = norm.EndTime
	b.Purpose = norm.Purpose

	if err := s.repo.UpdateFields(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, requested, notes, changedBy string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := Transition(b.Status, requested, notes)
	if err != nil {
		return nil, err
	}
	entry.BookingID = b.ID
	entry.ChangedBy = changedBy

	// The write is keyed on the status read above; a concurrent transition
	// makes it a no-op and surfaces ErrStaleState instead of silently
	// applying a decision against stale state.
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, entry); err != nil {
		return nil, err
	}

	b.Status = entry.NewStatus
	return b, nil
}

func (s *service) History(ctx context.Context, id int64) ([]*HistoryEntry, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanDelete(b.Status) {
		return ErrNotDeletable
	}
	return s.repo.Delete(ctx, id)
}
