package sugoroku

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"sugoroku/backend/internal/database"
	"sugoroku/backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// captureNotifier records published events for assertions.
type captureNotifier struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	RoomID  uint
	Kind    string
	Payload interface{}
}

func (n *captureNotifier) Publish(roomID uint, kind string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, capturedEvent{RoomID: roomID, Kind: kind, Payload: payload})
}

func (n *captureNotifier) byKind(kind string) []capturedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []capturedEvent
	for _, ev := range n.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection so every session sees the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db, "virus"))
	return db
}

func newTestEngine(t *testing.T, maxActiveRooms int) (*Engine, *gorm.DB, *captureNotifier) {
	t.Helper()

	db := newTestDB(t)
	notifier := &captureNotifier{}

	var virus models.User
	require.NoError(t, db.Where("is_virus = ?", true).First(&virus).Error)

	engine := NewEngine(db, maxActiveRooms, virus.ID, WithNotifier(notifier))
	return engine, db, notifier
}

func createUser(t *testing.T, db *gorm.DB, nickname string) models.User {
	t.Helper()

	user := models.User{
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func defaultBoard(t *testing.T, db *gorm.DB) models.Board {
	t.Helper()

	var board models.Board
	require.NoError(t, db.Preload("Spaces").First(&board).Error)
	return board
}

func TestCreateRoom(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "first room", board.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusOpen, room.Status)
	assert.Equal(t, owner.ID, room.OwnerID)
	assert.Equal(t, 1, room.MemberCount)
	assert.NotEmpty(t, room.Uname)

	var memberships []models.Membership
	require.NoError(t, db.Where("room_id = ?", room.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, owner.ID, memberships[0].UserID)
	assert.Nil(t, memberships[0].TurnOrder)
	assert.Equal(t, 0, memberships[0].Position)
}

func TestCreateRoomAlreadyOwnsOpenRoom(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	board := defaultBoard(t, db)

	_, err := engine.CreateRoom(ctx, owner.ID, "first", board.ID, 4)
	require.NoError(t, err)

	_, err = engine.CreateRoom(ctx, owner.ID, "second", board.ID, 4)
	assert.ErrorIs(t, err, ErrAlreadyOwnsOpenRoom)

	var active int64
	require.NoError(t, db.Model(&models.Room{}).
		Where("status IN ?", []models.RoomStatus{models.RoomStatusOpen, models.RoomStatusBusy}).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestCreateRoomCapacityExceeded(t *testing.T) {
	engine, db, _ := newTestEngine(t, 2)
	ctx := context.Background()

	board := defaultBoard(t, db)
	for i := 0; i < 2; i++ {
		owner := createUser(t, db, fmt.Sprintf("owner%d", i))
		_, err := engine.CreateRoom(ctx, owner.ID, fmt.Sprintf("room%d", i), board.ID, 4)
		require.NoError(t, err)
	}

	late := createUser(t, db, "late")
	_, err := engine.CreateRoom(ctx, late.ID, "one too many", board.ID, 4)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestConcurrentCreateRespectsCeiling(t *testing.T) {
	const ceiling = 5
	engine, db, _ := newTestEngine(t, ceiling)
	ctx := context.Background()

	board := defaultBoard(t, db)
	users := make([]models.User, 10)
	for i := range users {
		users[i] = createUser(t, db, fmt.Sprintf("creator%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, user := range users {
		wg.Add(1)
		go func(i int, ownerID uint) {
			defer wg.Done()
			_, errs[i] = engine.CreateRoom(ctx, ownerID, fmt.Sprintf("race%d", i), board.ID, 4)
		}(i, user.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
		}
	}
	assert.Equal(t, ceiling, succeeded)

	var active int64
	require.NoError(t, db.Model(&models.Room{}).
		Where("status IN ?", []models.RoomStatus{models.RoomStatusOpen, models.RoomStatusBusy}).
		Count(&active).Error)
	assert.EqualValues(t, ceiling, active)
}

func TestJoinRoom(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)

	joined, err := engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)
	assert.Equal(t, 2, joined.MemberCount)

	member, err := engine.IsMember(ctx, room.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestJoinRoomIdempotent(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)

	_, err = engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)
	_, err = engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, 2, fresh.MemberCount)

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("room_id = ? AND user_id = ?", room.ID, guest.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestJoinRoomNotFound(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)

	guest := createUser(t, db, "guest")
	_, err := engine.JoinRoom(context.Background(), guest.ID, "no-such-room")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinRoomFull(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		guest := createUser(t, db, fmt.Sprintf("guest%d", i))
		_, err := engine.JoinRoom(ctx, guest.ID, room.Uname)
		require.NoError(t, err)
	}

	for i := 0; i < 2; i++ {
		late := createUser(t, db, fmt.Sprintf("late%d", i))
		_, err := engine.JoinRoom(ctx, late.ID, room.Uname)
		assert.ErrorIs(t, err, ErrRoomFull)
	}

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, 4, fresh.MemberCount)
}

func TestJoinRoomWhileInAnotherRoom(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	ownerA := createUser(t, db, "ownerA")
	ownerB := createUser(t, db, "ownerB")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	roomA, err := engine.CreateRoom(ctx, ownerA.ID, "roomA", board.ID, 4)
	require.NoError(t, err)
	roomB, err := engine.CreateRoom(ctx, ownerB.ID, "roomB", board.ID, 4)
	require.NoError(t, err)

	_, err = engine.JoinRoom(ctx, guest.ID, roomA.Uname)
	require.NoError(t, err)

	_, err = engine.JoinRoom(ctx, guest.ID, roomB.Uname)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConcurrentJoinsNeverOverfill(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 3)
	require.NoError(t, err)

	users := make([]models.User, 8)
	for i := range users {
		users[i] = createUser(t, db, fmt.Sprintf("racer%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, user := range users {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, errs[i] = engine.JoinRoom(ctx, userID, room.Uname)
		}(i, user.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrRoomFull)
		}
	}
	assert.Equal(t, 2, succeeded) // owner holds the first of three slots

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)

	var live int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("room_id = ?", room.ID).
		Count(&live).Error)
	assert.EqualValues(t, fresh.MemberCount, live)
	assert.Equal(t, 3, fresh.MemberCount)
}

func TestLeaveRoomBeforeStart(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)
	_, err = engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)

	require.NoError(t, engine.LeaveRoom(ctx, guest.ID, room.Uname))

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, 1, fresh.MemberCount)
	assert.Equal(t, models.RoomStatusOpen, fresh.Status)

	member, err := engine.IsMember(ctx, room.ID, guest.ID)
	require.NoError(t, err)
	assert.False(t, member)

	// A departed guest is free to sit in another room.
	other := createUser(t, db, "other")
	otherRoom, err := engine.CreateRoom(ctx, other.ID, "other room", board.ID, 4)
	require.NoError(t, err)
	_, err = engine.JoinRoom(ctx, guest.ID, otherRoom.Uname)
	assert.NoError(t, err)
}

func TestLeaveRoomThenRejoinSameRoom(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)
	_, err = engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)

	require.NoError(t, engine.LeaveRoom(ctx, guest.ID, room.Uname))

	// The vacated seat must be reusable by the same participant.
	_, err = engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, 2, fresh.MemberCount)

	member, err := engine.IsMember(ctx, room.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestLeaveRoomAfterStart(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)
	_, err = engine.JoinRoom(ctx, guest.ID, room.Uname)
	require.NoError(t, err)

	require.NoError(t, engine.Start(ctx, room.Uname, owner.ID))

	assert.ErrorIs(t, engine.LeaveRoom(ctx, guest.ID, room.Uname), ErrInvalidState)

	// The seat survives the rejected departure.
	member, err := engine.IsMember(ctx, room.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestConcurrentJoinsAcrossRoomsSingleSeat(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	ownerA := createUser(t, db, "ownerA")
	ownerB := createUser(t, db, "ownerB")
	guest := createUser(t, db, "guest")
	board := defaultBoard(t, db)

	roomA, err := engine.CreateRoom(ctx, ownerA.ID, "roomA", board.ID, 4)
	require.NoError(t, err)
	roomB, err := engine.CreateRoom(ctx, ownerB.ID, "roomB", board.ID, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, uname := range []string{roomA.Uname, roomB.Uname} {
		wg.Add(1)
		go func(i int, uname string) {
			defer wg.Done()
			_, errs[i] = engine.JoinRoom(ctx, guest.ID, uname)
		}(i, uname)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrForbidden)
		}
	}
	assert.Equal(t, 1, succeeded)

	var live int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("user_id = ?", guest.ID).Count(&live).Error)
	assert.EqualValues(t, 1, live)
}

func TestLeaveRoomOwnerAbandons(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, 4)
	require.NoError(t, err)

	require.NoError(t, engine.LeaveRoom(ctx, owner.ID, room.Uname))

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, models.RoomStatusClosed, fresh.Status)
}

func TestListOpenRooms(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	board := defaultBoard(t, db)
	var unames []string
	for i := 0; i < 3; i++ {
		owner := createUser(t, db, fmt.Sprintf("owner%d", i))
		room, err := engine.CreateRoom(ctx, owner.ID, fmt.Sprintf("room%d", i), board.ID, 4)
		require.NoError(t, err)
		unames = append(unames, room.Uname)
	}

	// Closed rooms drop out of the listing.
	require.NoError(t, engine.Close(ctx, unames[1]))

	rooms, err := engine.ListOpenRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, unames[0], rooms[0].Uname)
	assert.Equal(t, unames[2], rooms[1].Uname)
}
