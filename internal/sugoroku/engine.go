package sugoroku

import (
	"errors"
	"log"
	"math/rand"
	"sync"

	"gorm.io/gorm"
)

// Engine owns all room mutations. Every operation on a single room runs
// under that room's mutex so concurrent requests cannot interleave; room
// creation additionally holds a registry-level mutex so the global
// capacity and one-open-room-per-owner checks see a consistent snapshot.
// Operations on different rooms proceed in parallel.
type Engine struct {
	db       *gorm.DB
	notifier Notifier

	// maxActiveRooms caps rooms with status open or busy.
	maxActiveRooms int

	// virusID is the reserved automated participant's user ID.
	virusID uint

	// createMu guards the registry-wide invariants at creation time.
	createMu sync.Mutex

	// memberMu guards the one-live-room-per-participant invariant, which
	// spans rooms and so cannot be covered by a single room's lock.
	// Acquired after createMu or a room lock, never before.
	memberMu sync.Mutex

	// roomMu holds one mutex per room ID, created lazily.
	mu     sync.Mutex
	roomMu map[uint]*sync.Mutex

	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier wires the event sink.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithRand overrides the randomness source. Intended for tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// NewEngine creates an engine over the given database. virusID must
// reference the seeded virus user.
func NewEngine(db *gorm.DB, maxActiveRooms int, virusID uint, opts ...Option) *Engine {
	e := &Engine{
		db:             db,
		notifier:       noopNotifier{},
		maxActiveRooms: maxActiveRooms,
		virusID:        virusID,
		roomMu:         make(map[uint]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lockRoom returns the mutex for a room, creating it on first use.
func (e *Engine) lockRoom(roomID uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.roomMu[roomID]
	if !ok {
		m = &sync.Mutex{}
		e.roomMu[roomID] = m
	}
	return m
}

// publish sends an event to the notifier. Failures stay in the sink;
// nothing propagates back to the triggering operation.
func (e *Engine) publish(roomID uint, kind string, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notifier panic publishing %s for room %d: %v", kind, roomID, r)
		}
	}()
	e.notifier.Publish(roomID, kind, payload)
}

// intn draws from the configured randomness source.
func (e *Engine) intn(n int) int {
	if e.rng != nil {
		return e.rng.Intn(n)
	}
	return rand.Intn(n)
}

// shuffle permutes using the configured randomness source.
func (e *Engine) shuffle(n int, swap func(i, j int)) {
	if e.rng != nil {
		e.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

// notFoundAs maps gorm's record-not-found to the given engine error.
func notFoundAs(err, kind error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kind
	}
	return err
}
