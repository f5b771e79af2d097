package sugoroku

import "errors"

// Engine error kinds. Handlers map these to HTTP responses; the engine
// never returns transport types.
var (
	// ErrAlreadyOwnsOpenRoom is returned when an owner tries to create a
	// second room while one of theirs is still open.
	ErrAlreadyOwnsOpenRoom = errors.New("sugoroku: owner already has an open room")

	// ErrCapacityExceeded is returned when the global ceiling of active
	// (open or busy) rooms has been reached.
	ErrCapacityExceeded = errors.New("sugoroku: active room ceiling reached")

	// ErrRoomNotFound is returned when no room exists for the given uname.
	ErrRoomNotFound = errors.New("sugoroku: room not found")

	// ErrRoomFull is returned when a room holds max_member_count members.
	ErrRoomFull = errors.New("sugoroku: room is full")

	// ErrForbidden is returned for wrong-actor operations: non-owner
	// start, out-of-turn actions, joining while in another live room.
	ErrForbidden = errors.New("sugoroku: forbidden")

	// ErrInvalidState is returned when an operation is not valid for the
	// room's current status.
	ErrInvalidState = errors.New("sugoroku: invalid room state")

	// ErrNotFound is returned for participant, board or space lookup misses.
	ErrNotFound = errors.New("sugoroku: not found")
)
