package sugoroku

import (
	"context"
	"sort"

	"sugoroku/backend/internal/models"

	"gorm.io/gorm"
)

// Start fixes the turn order and flips the room to busy. Only the owner
// may start. The virus membership is inserted here so it holds a slot in
// the permutation without ever consuming a join slot. The order
// assignment and the status flip commit together; no reader can observe
// a busy room with a partial turn order. After the commit, any leading
// virus turns are resolved automatically.
func (e *Engine) Start(ctx context.Context, uname string, requesterID uint) error {
	room, err := e.FindByName(ctx, uname)
	if err != nil {
		return err
	}

	var started GameStartedPayload
	err = e.startLocked(ctx, room, requesterID, &started)
	if err != nil {
		return err
	}

	e.publish(room.ID, EventGameStarted, started)
	e.runVirusTurns(ctx, room.ID)
	return nil
}

// startLocked holds the room lock for the start transaction only; the
// event publish and the virus follow-up reacquire it per turn.
func (e *Engine) startLocked(ctx context.Context, room *models.Room, requesterID uint, started *GameStartedPayload) error {
	lock := e.lockRoom(room.ID)
	lock.Lock()
	defer lock.Unlock()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(room, room.ID).Error; err != nil {
			return notFoundAs(err, ErrRoomNotFound)
		}
		if room.OwnerID != requesterID {
			return ErrForbidden
		}
		if room.Status != models.RoomStatusOpen {
			return ErrInvalidState
		}

		virus := models.Membership{RoomID: room.ID, UserID: e.virusID}
		if err := tx.Create(&virus).Error; err != nil {
			return err
		}

		var memberships []models.Membership
		if err := tx.Preload("User").
			Where("room_id = ?", room.ID).
			Find(&memberships).Error; err != nil {
			return err
		}

		// Uniform random bijection onto [0, n).
		order := make([]int, len(memberships))
		for i := range order {
			order[i] = i
		}
		e.shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for i := range memberships {
			turn := order[i]
			if err := tx.Model(&memberships[i]).Update("turn_order", turn).Error; err != nil {
				return err
			}
			memberships[i].TurnOrder = &turn
		}

		if err := tx.Model(room).Updates(map[string]interface{}{
			"status":       models.RoomStatusBusy,
			"current_turn": 0,
		}).Error; err != nil {
			return err
		}

		sort.Slice(memberships, func(i, j int) bool {
			return *memberships[i].TurnOrder < *memberships[j].TurnOrder
		})
		*started = GameStartedPayload{RoomID: room.ID, Uname: room.Uname}
		for _, m := range memberships {
			started.Participants = append(started.Participants, OrderedParticipant{
				UserID:    m.UserID,
				Nickname:  m.User.Nickname,
				TurnOrder: *m.TurnOrder,
				IsVirus:   m.User.IsVirus,
			})
		}
		return nil
	})
}

// Close ends a room. Terminal and irreversible; the row is kept for audit.
func (e *Engine) Close(ctx context.Context, uname string) error {
	room, err := e.FindByName(ctx, uname)
	if err != nil {
		return err
	}

	lock := e.lockRoom(room.ID)
	lock.Lock()
	defer lock.Unlock()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(room, room.ID).Error; err != nil {
			return notFoundAs(err, ErrRoomNotFound)
		}
		if room.Status == models.RoomStatusClosed {
			return ErrInvalidState
		}
		return tx.Model(room).Update("status", models.RoomStatusClosed).Error
	})
}
