package sugoroku

import (
	"context"
	"errors"
	"log"

	"sugoroku/backend/internal/models"

	"gorm.io/gorm"
)

// ActionResult reports what a resolved turn actually did.
type ActionResult struct {
	AppliedEffect models.SpaceEffect
	EffectNum     int
	Position      int
	Finished      bool
	GameEnded     bool
}

// ResolveAction resolves one turn for a human participant: validates the
// turn, moves the token, applies the landed space's effect, checks the
// goal, appends the log entry and advances the turn pointer — all as one
// atomic unit. On success an ActionResolved event is published and any
// following virus turns are played out automatically.
func (e *Engine) ResolveAction(ctx context.Context, uname string, actorID uint, kind models.ActionKind, effect models.SpaceEffect, magnitude int) (*ActionResult, error) {
	room, err := e.FindByName(ctx, uname)
	if err != nil {
		return nil, err
	}
	if actorID == e.virusID {
		return nil, ErrForbidden
	}

	result, err := e.resolve(ctx, room.ID, actorID, kind, effect, magnitude)
	if err != nil {
		return nil, err
	}

	e.runVirusTurns(ctx, room.ID)
	return result, nil
}

// GetPosition returns the participant's current token position.
func (e *Engine) GetPosition(ctx context.Context, uname string, participantID uint) (int, error) {
	room, err := e.FindByName(ctx, uname)
	if err != nil {
		return 0, err
	}

	var membership models.Membership
	err = e.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", room.ID, participantID).
		First(&membership).Error
	if err != nil {
		return 0, notFoundAs(err, ErrNotFound)
	}
	return membership.Position, nil
}

// resolve runs one turn under the room lock. It performs no virus
// follow-up and publishes the event itself after the commit.
func (e *Engine) resolve(ctx context.Context, roomID, actorID uint, kind models.ActionKind, effect models.SpaceEffect, magnitude int) (*ActionResult, error) {
	if magnitude < 0 {
		return nil, ErrInvalidState
	}

	lock := e.lockRoom(roomID)
	lock.Lock()
	defer lock.Unlock()

	var (
		room    models.Room
		result  ActionResult
		payload ActionResolvedPayload
	)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, roomID).Error; err != nil {
			return notFoundAs(err, ErrRoomNotFound)
		}
		if room.Status != models.RoomStatusBusy {
			return ErrInvalidState
		}

		var actor models.Membership
		err := tx.Where("room_id = ? AND user_id = ?", roomID, actorID).First(&actor).Error
		if err != nil {
			return notFoundAs(err, ErrForbidden)
		}
		if actor.Finished || actor.TurnOrder == nil || *actor.TurnOrder != room.CurrentTurn {
			return ErrForbidden
		}

		var board models.Board
		if err := tx.First(&board, room.BoardID).Error; err != nil {
			return notFoundAs(err, ErrNotFound)
		}

		// Declared movement, clamped to the track.
		position := actor.Position
		switch effect {
		case models.EffectMoveForward:
			position += magnitude
		case models.EffectMoveBackward:
			position -= magnitude
		default:
			return ErrInvalidState
		}
		position = clampPosition(position, board.GoalPosition)

		applied := effect
		appliedNum := magnitude
		skip := false

		// Landing on an effect space chains one further adjustment.
		var space models.Space
		err = tx.Where("board_id = ? AND position = ?", board.ID, position).First(&space).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && space.Effect != models.EffectNone {
			applied = space.Effect
			appliedNum = space.EffectNum
			switch space.Effect {
			case models.EffectMoveForward:
				position = clampPosition(position+space.EffectNum, board.GoalPosition)
			case models.EffectMoveBackward:
				position = clampPosition(position-space.EffectNum, board.GoalPosition)
			case models.EffectGoToStart:
				position = 0
			case models.EffectSkipTurn:
				skip = true
			}
		}

		finished := position >= board.GoalPosition
		gameEnded := finished // first finisher wins

		updates := map[string]interface{}{
			"position": position,
			"finished": finished,
		}
		if skip {
			updates["skip_next"] = true
		}
		if err := tx.Model(&actor).Updates(updates).Error; err != nil {
			return err
		}

		entry := models.RoomLog{
			RoomID:        roomID,
			UserID:        actorID,
			Action:        kind,
			Effect:        applied,
			EffectNum:     appliedNum,
			FinalPosition: position,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if gameEnded {
			if err := tx.Model(&room).Update("status", models.RoomStatusClosed).Error; err != nil {
				return err
			}
		} else if err := e.advanceTurn(tx, &room); err != nil {
			return err
		}

		result = ActionResult{
			AppliedEffect: applied,
			EffectNum:     appliedNum,
			Position:      position,
			Finished:      finished,
			GameEnded:     gameEnded,
		}
		payload = ActionResolvedPayload{
			RoomID:    roomID,
			Uname:     room.Uname,
			UserID:    actorID,
			Action:    string(kind),
			Effect:    string(applied),
			EffectNum: appliedNum,
			Position:  position,
			Finished:  finished,
			GameEnded: gameEnded,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.publish(roomID, EventActionResolved, payload)
	return &result, nil
}

// advanceTurn moves the pointer to the next participant who is neither
// finished nor sitting out. A consumed skip flag is cleared in passing.
func (e *Engine) advanceTurn(tx *gorm.DB, room *models.Room) error {
	var memberships []models.Membership
	if err := tx.Where("room_id = ? AND turn_order IS NOT NULL", room.ID).
		Order("turn_order ASC").
		Find(&memberships).Error; err != nil {
		return err
	}
	n := len(memberships)
	if n == 0 {
		return ErrInvalidState
	}

	// Two passes at most: every skip flag on the way is cleared once.
	for step := 1; step <= 2*n; step++ {
		next := &memberships[(room.CurrentTurn+step)%n]
		if next.Finished {
			continue
		}
		if next.SkipNext {
			if err := tx.Model(next).Update("skip_next", false).Error; err != nil {
				return err
			}
			next.SkipNext = false
			continue
		}
		room.CurrentTurn = *next.TurnOrder
		return tx.Model(room).Update("current_turn", room.CurrentTurn).Error
	}

	// Nobody left to act; end the session.
	return tx.Model(room).Update("status", models.RoomStatusClosed).Error
}

// runVirusTurns plays the automated participant whenever its slot is
// due: a uniform 1..6 forward roll through the same resolution path as a
// human turn. Loops until a human is due or the game ends.
func (e *Engine) runVirusTurns(ctx context.Context, roomID uint) {
	for i := 0; i < 64; i++ {
		var room models.Room
		if err := e.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
			return
		}
		if room.Status != models.RoomStatusBusy {
			return
		}

		var due models.Membership
		err := e.db.WithContext(ctx).
			Where("room_id = ? AND turn_order = ?", roomID, room.CurrentTurn).
			First(&due).Error
		if err != nil || due.UserID != e.virusID {
			return
		}

		roll := e.intn(6) + 1
		if _, err := e.resolve(ctx, roomID, e.virusID, models.ActionDiceRoll, models.EffectMoveForward, roll); err != nil {
			log.Printf("virus turn failed in room %d: %v", roomID, err)
			return
		}
	}
}

func clampPosition(position, goal int) int {
	if position < 0 {
		return 0
	}
	if position > goal {
		return goal
	}
	return position
}
