package sugoroku

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"sugoroku/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openRoomWithMembers creates a room through the engine and joins the
// given number of guests.
func openRoomWithMembers(t *testing.T, engine *Engine, db *gorm.DB, guests int) (*models.Room, models.User) {
	t.Helper()
	ctx := context.Background()

	owner := createUser(t, db, fmt.Sprintf("owner-%s", t.Name()))
	board := defaultBoard(t, db)

	room, err := engine.CreateRoom(ctx, owner.ID, "room", board.ID, guests+2)
	require.NoError(t, err)

	for i := 0; i < guests; i++ {
		guest := createUser(t, db, fmt.Sprintf("guest%d-%s", i, t.Name()))
		_, err := engine.JoinRoom(ctx, guest.ID, room.Uname)
		require.NoError(t, err)
	}
	return room, owner
}

func TestStartForbiddenForNonOwner(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	room, _ := openRoomWithMembers(t, engine, db, 2)

	var guest models.Membership
	require.NoError(t, db.Where("room_id = ? AND user_id <> ?", room.ID, room.OwnerID).First(&guest).Error)

	err := engine.Start(ctx, room.Uname, guest.UserID)
	assert.ErrorIs(t, err, ErrForbidden)

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, models.RoomStatusOpen, fresh.Status)

	// No turn order leaked out of the failed start.
	var assigned int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("room_id = ? AND turn_order IS NOT NULL", room.ID).
		Count(&assigned).Error)
	assert.Zero(t, assigned)
}

func TestStartAssignsTurnOrderPermutation(t *testing.T) {
	engine, db, notifier := newTestEngine(t, 10)
	ctx := context.Background()

	room, owner := openRoomWithMembers(t, engine, db, 3)

	require.NoError(t, engine.Start(ctx, room.Uname, owner.ID))

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, models.RoomStatusBusy, fresh.Status)

	var memberships []models.Membership
	require.NoError(t, db.Where("room_id = ?", room.ID).Find(&memberships).Error)
	require.Len(t, memberships, 5) // owner + 3 guests + virus

	orders := make([]int, 0, len(memberships))
	for _, m := range memberships {
		require.NotNil(t, m.TurnOrder)
		orders = append(orders, *m.TurnOrder)
	}
	sort.Ints(orders)
	for i, order := range orders {
		assert.Equal(t, i, order) // bijection onto [0, n)
	}

	started := notifier.byKind(EventGameStarted)
	require.Len(t, started, 1)
	payload, ok := started[0].Payload.(GameStartedPayload)
	require.True(t, ok)
	assert.Equal(t, room.ID, payload.RoomID)
	require.Len(t, payload.Participants, 5)
	for i, p := range payload.Participants {
		assert.Equal(t, i, p.TurnOrder)
	}
}

func TestStartInvalidStateWhenAlreadyBusy(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	room, owner := openRoomWithMembers(t, engine, db, 1)
	require.NoError(t, engine.Start(ctx, room.Uname, owner.ID))

	err := engine.Start(ctx, room.Uname, owner.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStartResolvesLeadingVirusTurns(t *testing.T) {
	engine, db, _ := newTestEngine(t, 32)
	ctx := context.Background()

	board := defaultBoard(t, db)
	virusActed := false

	// Two-participant rooms (owner + virus): roughly half the starts put
	// the virus first, and those must have auto-played by the time Start
	// returns, leaving a human due.
	for i := 0; i < 16; i++ {
		owner := createUser(t, db, fmt.Sprintf("solo%d", i))
		room, err := engine.CreateRoom(ctx, owner.ID, fmt.Sprintf("solo room %d", i), board.ID, 2)
		require.NoError(t, err)
		require.NoError(t, engine.Start(ctx, room.Uname, owner.ID))

		var fresh models.Room
		require.NoError(t, db.First(&fresh, room.ID).Error)
		require.Equal(t, models.RoomStatusBusy, fresh.Status)

		var due models.Membership
		require.NoError(t, db.Where("room_id = ? AND turn_order = ?", room.ID, fresh.CurrentTurn).First(&due).Error)
		assert.Equal(t, owner.ID, due.UserID, "the participant due after Start must be human")

		var virusLogs int64
		require.NoError(t, db.Model(&models.RoomLog{}).
			Where("room_id = ? AND user_id = ?", room.ID, engine.virusID).
			Count(&virusLogs).Error)
		if virusLogs > 0 {
			virusActed = true

			var log models.RoomLog
			require.NoError(t, db.Where("room_id = ? AND user_id = ?", room.ID, engine.virusID).First(&log).Error)
			assert.Equal(t, models.ActionDiceRoll, log.Action)
		}
	}

	assert.True(t, virusActed, "across 16 starts the virus should have drawn the first slot at least once")
}

func TestCloseIsTerminal(t *testing.T) {
	engine, db, _ := newTestEngine(t, 10)
	ctx := context.Background()

	room, _ := openRoomWithMembers(t, engine, db, 0)

	require.NoError(t, engine.Close(ctx, room.Uname))

	var fresh models.Room
	require.NoError(t, db.First(&fresh, room.ID).Error)
	assert.Equal(t, models.RoomStatusClosed, fresh.Status)

	assert.ErrorIs(t, engine.Close(ctx, room.Uname), ErrInvalidState)
}
