package sugoroku

import (
	"context"
	"errors"

	"sugoroku/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOpenRooms returns rooms accepting joins, oldest first. The read is
// lock-free; listings may trail an in-flight mutation by one step.
func (e *Engine) ListOpenRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := e.db.WithContext(ctx).
		Where("status = ?", models.RoomStatusOpen).
		Order("created_at ASC").
		Find(&rooms).Error
	return rooms, err
}

// CreateRoom opens a new room and admits the owner as its first member.
// The capacity ceiling and the one-open-room-per-owner check are
// evaluated under the registry mutex inside the same transaction as the
// insert, so two concurrent creations cannot both slip under the ceiling.
func (e *Engine) CreateRoom(ctx context.Context, ownerID uint, name string, boardID uint, maxMemberCount int) (*models.Room, error) {
	e.createMu.Lock()
	defer e.createMu.Unlock()
	e.memberMu.Lock()
	defer e.memberMu.Unlock()

	var room *models.Room
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Room{}).
			Where("owner_id = ? AND status = ?", ownerID, models.RoomStatusOpen).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwnsOpenRoom
		}

		// One live room per participant, same as join.
		var elsewhere int64
		if err := tx.Model(&models.Membership{}).
			Joins("JOIN rooms ON rooms.id = memberships.room_id").
			Where("memberships.user_id = ? AND rooms.status <> ?", ownerID, models.RoomStatusClosed).
			Count(&elsewhere).Error; err != nil {
			return err
		}
		if elsewhere > 0 {
			return ErrForbidden
		}

		var active int64
		if err := tx.Model(&models.Room{}).
			Where("status IN ?", []models.RoomStatus{models.RoomStatusOpen, models.RoomStatusBusy}).
			Count(&active).Error; err != nil {
			return err
		}
		if int(active) >= e.maxActiveRooms {
			return ErrCapacityExceeded
		}

		var board models.Board
		if err := tx.First(&board, boardID).Error; err != nil {
			return notFoundAs(err, ErrNotFound)
		}

		room = &models.Room{
			Uname:          uuid.NewString(),
			Name:           name,
			OwnerID:        ownerID,
			BoardID:        board.ID,
			Status:         models.RoomStatusOpen,
			MaxMemberCount: maxMemberCount,
			MemberCount:    1,
		}
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		membership := models.Membership{RoomID: room.ID, UserID: ownerID}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// JoinRoom admits a participant into an open room. Joining a room the
// participant already belongs to succeeds without changing anything.
func (e *Engine) JoinRoom(ctx context.Context, userID uint, uname string) (*models.Room, error) {
	room, err := e.FindByName(ctx, uname)
	if err != nil {
		return nil, err
	}

	lock := e.lockRoom(room.ID)
	lock.Lock()
	defer lock.Unlock()
	e.memberMu.Lock()
	defer e.memberMu.Unlock()

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(room, room.ID).Error; err != nil {
			return notFoundAs(err, ErrRoomNotFound)
		}

		var existing models.Membership
		err := tx.Where("room_id = ? AND user_id = ?", room.ID, userID).First(&existing).Error
		if err == nil {
			return nil // already a member, idempotent success
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if room.Status != models.RoomStatusOpen {
			return ErrInvalidState
		}

		// One live room per participant.
		var elsewhere int64
		if err := tx.Model(&models.Membership{}).
			Joins("JOIN rooms ON rooms.id = memberships.room_id").
			Where("memberships.user_id = ? AND rooms.status <> ?", userID, models.RoomStatusClosed).
			Count(&elsewhere).Error; err != nil {
			return err
		}
		if elsewhere > 0 {
			return ErrForbidden
		}

		if room.MemberCount >= room.MaxMemberCount {
			return ErrRoomFull
		}

		membership := models.Membership{RoomID: room.ID, UserID: userID}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		room.MemberCount++
		return tx.Model(room).Update("member_count", room.MemberCount).Error
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// LeaveRoom removes a participant from a room that has not started. The
// owner leaving abandons the room entirely. Once the game is busy,
// memberships are fixed and leaving is rejected.
func (e *Engine) LeaveRoom(ctx context.Context, userID uint, uname string) error {
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
		if room.Status != models.RoomStatusOpen {
			return ErrInvalidState
		}

		var membership models.Membership
		err := tx.Where("room_id = ? AND user_id = ?", room.ID, userID).First(&membership).Error
		if err != nil {
			return notFoundAs(err, ErrNotFound)
		}

		// Hard delete: a soft-deleted row would keep the (room_id, user_id)
		// unique slot occupied and block the participant from rejoining.
		if err := tx.Unscoped().Delete(&membership).Error; err != nil {
			return err
		}
		if err := tx.Model(room).Update("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
			return err
		}

		if room.OwnerID == userID {
			return tx.Model(room).Update("status", models.RoomStatusClosed).Error
		}
		return nil
	})
}

// FindByName looks a room up by its uname.
func (e *Engine) FindByName(ctx context.Context, uname string) (*models.Room, error) {
	var room models.Room
	err := e.db.WithContext(ctx).Where("uname = ?", uname).First(&room).Error
	if err != nil {
		return nil, notFoundAs(err, ErrRoomNotFound)
	}
	return &room, nil
}

// IsMember reports whether the participant holds a membership in the
// room. Used as the access gate before room-scoped reads.
func (e *Engine) IsMember(ctx context.Context, roomID, userID uint) (bool, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&models.Membership{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}
