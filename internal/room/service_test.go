package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	rooms  map[int64]*Room
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rooms: map[int64]*Room{}}
}

func (f *fakeRepository) codeInUse(code string, exclude int64) bool {
	for _, r := range f.rooms {
		if r.Code == code && r.ID != exclude {
			return true
		}
	}
	return false
}

func (f *fakeRepository) Create(_ context.Context, r *Room) error {
	if f.codeInUse(r.Code, 0) {
		return ErrCodeTaken
	}
	f.nextID++
	r.ID = f.nextID
	stored := *r
	f.rooms[r.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.rooms[id]
	return ok, nil
}

func (f *fakeRepository) List(_ context.Context, _ Filter) ([]*Room, int, error) {
	var out []*Room
	for _, r := range f.rooms {
		copied := *r
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, r *Room) error {
	if _, ok := f.rooms[r.ID]; !ok {
		return ErrNotFound
	}
	if f.codeInUse(r.Code, r.ID) {
		return ErrCodeTaken
	}
	copied := *r
	f.rooms[r.ID] = &copied
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

func TestRoomCreate(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{
		Code:     "  MR-101  ",
		Name:     "Main Conference Room",
		Capacity: 12,
		Location: "3rd floor",
	})
	require.NoError(t, err)

	assert.Equal(t, "MR-101", r.Code)
	assert.Equal(t, StatusAvailable, r.Status)
	assert.NotZero(t, r.ID)
}

func TestRoomCreateRequiresCodeAndName(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "No Code", Capacity: 4})
	assert.ErrorIs(t, err, ErrCodeRequired)

	_, err = svc.Create(ctx, CreateRequest{Code: "MR-1", Name: "   ", Capacity: 4})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRoomCodeUniqueness(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Code: "MR-101", Name: "A", Capacity: 4, Location: "x"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Code: "MR-101", Name: "B", Capacity: 8, Location: "y"})
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestRoomUpdate(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{Code: "MR-101", Name: "A", Capacity: 4, Location: "x"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, r.ID, UpdateRequest{
		Code:     "MR-102",
		Name:     "A renamed",
		Capacity: 6,
		Location: "x",
		Status:   "UnderMaintenance",
	})
	require.NoError(t, err)
	assert.Equal(t, "MR-102", updated.Code)
	assert.Equal(t, StatusUnderMaintenance, updated.Status)

	_, err = svc.Update(ctx, r.ID, UpdateRequest{
		Code: "MR-102", Name: "A", Capacity: 6, Location: "x", Status: "Broken",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRoomDelete(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)

	r, err := svc.Create(ctx, CreateRequest{Code: "MR-101", Name: "A", Capacity: 4, Location: "x"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, r.ID))

	exists, err := svc.Exists(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestParseRoomStatus(t *testing.T) {
	for _, s := range []string{"Available", "UnderMaintenance", "Occupied"} {
		parsed, ok := ParseStatus(s)
		require.True(t, ok)
		assert.Equal(t, Status(s), parsed)
	}

	_, ok := ParseStatus("available")
	assert.False(t, ok)
}
