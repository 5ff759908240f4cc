package rooms_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/intervals"
	"github.com/m04kA/FestAccommodationService/internal/service/ledger"
	"github.com/m04kA/FestAccommodationService/internal/service/rooms"
	"github.com/m04kA/FestAccommodationService/internal/testutil/memstore"
	"github.com/m04kA/FestAccommodationService/pkg/logger"
	"github.com/m04kA/FestAccommodationService/pkg/ptr"
)

func day(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

type fixture struct {
	store   *memstore.Store
	ledger  *ledger.Service
	svc     *rooms.Service
	manager *domain.User
	guest   *domain.User
}

func newFixture() *fixture {
	store := memstore.New()
	nop := logger.NewNop()
	l := ledger.NewService(store.Placements(), store.Rooms(), store.Users(), nop)

	return &fixture{
		store:  store,
		ledger: l,
		svc: rooms.NewService(store.Rooms(), l, intervals.NewIndex(store.Placements()), store.Placements(),
			store.Attachments(), store.Registrations(), store.Users(), store.Festivals(), store.TxManager(), nop),
		manager: store.AddUser(domain.User{FullName: "Менеджер"}),
		guest:   store.AddUser(domain.User{SpiritualName: "Гость"}),
	}
}

func (f *fixture) place(t *testing.T, room *domain.Room, slot int, from, to string) *domain.Placement {
	t.Helper()
	p, err := f.ledger.Create(context.Background(), &domain.Placement{
		RoomID:     room.ID,
		Slot:       slot,
		ManagerID:  f.manager.ID,
		OccupantID: f.guest.ID,
		Status:     domain.StatusBooked,
		DateFrom:   day(from),
		DateTo:     day(to),
	})
	require.NoError(t, err)
	return p
}

func TestService_List_BuildingsOfActiveFestival(t *testing.T) {
	f := newFixture()
	f.store.AddRoom(domain.Room{Building: 3, Floor: 1, Number: 301, Capacity: 2})
	f.store.AddRoom(domain.Room{Building: 1, Floor: 2, Number: 120, Capacity: 2})
	f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 110, Capacity: 2})
	f.store.AddRoom(domain.Room{Building: 2, Floor: 1, Number: 201, Capacity: 2})
	f.store.SetFestival(&domain.Festival{ID: 1, IsActive: true, AvailableBuildings: []int{1, 3}})

	catalog, err := f.svc.List(context.Background(), domain.RoomFilter{}, false)
	require.NoError(t, err)
	require.NotNil(t, catalog.Festival)

	var numbers []int
	for _, rv := range catalog.Rooms {
		numbers = append(numbers, rv.Room.Number)
		assert.Empty(t, rv.Placements)
	}
	assert.Equal(t, []int{110, 120, 301}, numbers)
}

func TestService_List_WithoutFestival(t *testing.T) {
	f := newFixture()
	f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 101, Capacity: 2})
	f.store.AddRoom(domain.Room{Building: 2, Floor: 1, Number: 201, Capacity: 2})

	catalog, err := f.svc.List(context.Background(), domain.RoomFilter{Building: ptr.Ptr(2)}, false)
	require.NoError(t, err)
	assert.Nil(t, catalog.Festival)
	require.Len(t, catalog.Rooms, 1)
	assert.Equal(t, 201, catalog.Rooms[0].Room.Number)
}

func TestService_List_WithPlacements(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	room := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 101, Capacity: 3})
	empty := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 102, Capacity: 3})
	p := f.place(t, room, 1, "2024-07-01", "2024-07-10")

	childUser := f.store.AddUser(domain.User{FullName: "Петя"})
	child := f.store.AddChild(f.guest.ID, 1, domain.ChildRegistration{ChildUserID: childUser.ID})
	_, err := f.store.Attachments().Create(ctx, &domain.ChildAttachment{PlacementID: p.ID, ChildRegistrationID: child.ID})
	require.NoError(t, err)

	catalog, err := f.svc.List(ctx, domain.RoomFilter{}, true)
	require.NoError(t, err)
	require.Len(t, catalog.Rooms, 2)

	assert.Equal(t, room.ID, catalog.Rooms[0].Room.ID)
	require.Len(t, catalog.Rooms[0].Placements, 1)
	view := catalog.Rooms[0].Placements[0]
	assert.Equal(t, p.ID, view.Placement.ID)
	assert.Equal(t, "(Гость)", view.Occupant.DisplayName())
	assert.Equal(t, "Менеджер", view.Manager.FullName)
	require.Len(t, view.Children, 1)
	assert.Equal(t, child.ID, view.Children[0].Registration.ID)
	assert.Equal(t, "Петя", view.Children[0].User.FullName)

	assert.Equal(t, empty.ID, catalog.Rooms[1].Room.ID)
	assert.Empty(t, catalog.Rooms[1].Placements)
}

func TestService_GetFreeSlots(t *testing.T) {
	f := newFixture()
	room := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 101, Capacity: 4})
	f.place(t, room, 1, "2024-07-01", "2024-07-10")
	f.place(t, room, 3, "2024-07-09", "2024-07-15")
	f.place(t, room, 4, "2024-08-01", "2024-08-05")

	slots, err := f.svc.GetFreeSlots(context.Background(), room.ID, domain.NewInterval(day("2024-07-05"), day("2024-07-12")))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, slots.Free)
	assert.Equal(t, []int{1, 3}, slots.Occupied)

	_, err = f.svc.GetFreeSlots(context.Background(), room.ID, domain.NewInterval(day("2024-07-05"), nil))
	assert.ErrorIs(t, err, rooms.ErrInvalidInterval)

	_, err = f.svc.GetFreeSlots(context.Background(), room.ID, domain.NewInterval(day("2024-07-12"), day("2024-07-05")))
	assert.ErrorIs(t, err, rooms.ErrInvalidInterval)

	_, err = f.svc.GetFreeSlots(context.Background(), 999999, domain.NewInterval(day("2024-07-05"), day("2024-07-12")))
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestService_Update(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	room := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 101, Capacity: 4})
	f.place(t, room, 3, "2024-07-01", "2024-07-10")

	_, err := f.svc.Update(ctx, room.ID, rooms.RoomPatch{Capacity: ptr.Ptr(2)})
	assert.ErrorIs(t, err, rooms.ErrCapacityInUse)

	updated, err := f.svc.Update(ctx, room.ID, rooms.RoomPatch{Capacity: ptr.Ptr(3), Description: ptr.Ptr("у окна")})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Capacity)
	assert.Equal(t, "у окна", updated.Description)

	_, err = f.svc.Update(ctx, room.ID, rooms.RoomPatch{Capacity: ptr.Ptr(0)})
	assert.ErrorIs(t, err, rooms.ErrInvalidCapacity)

	_, err = f.svc.Update(ctx, room.ID, rooms.RoomPatch{})
	assert.ErrorIs(t, err, rooms.ErrInvalidInput)

	_, err = f.svc.Update(ctx, 999999, rooms.RoomPatch{Capacity: ptr.Ptr(3)})
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestService_Update_Location(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	room := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 101, Capacity: 2})
	f.store.AddRoom(domain.Room{Building: 1, Floor: 2, Number: 201, Capacity: 2})

	moved, err := f.svc.Update(ctx, room.ID, rooms.RoomPatch{Building: ptr.Ptr(2), Floor: ptr.Ptr(0), Number: ptr.Ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Building)
	assert.Equal(t, 0, moved.Floor)
	assert.Equal(t, 7, moved.Number)
	assert.Equal(t, 2, moved.Capacity)

	_, err = f.svc.Update(ctx, room.ID, rooms.RoomPatch{Building: ptr.Ptr(1), Floor: ptr.Ptr(2), Number: ptr.Ptr(201)})
	assert.ErrorIs(t, err, rooms.ErrRoomLocationTaken)

	stored, err := f.store.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Number, "rejected update is rolled back")

	for _, patch := range []rooms.RoomPatch{
		{Building: ptr.Ptr(0)},
		{Number: ptr.Ptr(-1)},
		{Floor: ptr.Ptr(-2)},
	} {
		_, err = f.svc.Update(ctx, room.ID, patch)
		assert.ErrorIs(t, err, rooms.ErrInvalidInput)
	}
}

func TestService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	busy := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 101, Capacity: 2})
	free := f.store.AddRoom(domain.Room{Building: 1, Floor: 1, Number: 102, Capacity: 2})
	f.place(t, busy, 1, "2024-07-01", "2024-07-10")

	assert.ErrorIs(t, f.svc.Delete(ctx, busy.ID), rooms.ErrRoomInUse)
	require.NoError(t, f.svc.Delete(ctx, free.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, free.ID), rooms.ErrRoomNotFound)
}
