package window

import (
	"sync"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

// DefaultCapacity matches the conversation buffer size of the original
// tutoring flow
const DefaultCapacity = 10

// Key identifies one conversation window. Windows are strictly keyed; there
// is no cross-session or cross-user visibility.
type Key struct {
	User    types.UserID
	Session types.SessionID
}

// Manager holds the per-(user, session) bounded turn windows and the
// per-session locks implementing the single-writer-per-session discipline.
type Manager struct {
	capacity int

	mu      sync.Mutex
	windows map[Key]*ring
	locks   map[Key]*sync.Mutex
}

func New(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		capacity: capacity,
		windows:  make(map[Key]*ring),
		locks:    make(map[Key]*sync.Mutex),
	}
}

// Push appends a turn to the window, evicting the oldest when at capacity
func (m *Manager) Push(user types.UserID, session types.SessionID, turn model.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key{User: user, Session: session}
	w, exists := m.windows[key]
	if !exists {
		w = newRing(m.capacity)
		m.windows[key] = w
	}
	w.push(turn)
}

// Snapshot returns the window contents oldest first. The returned slice is
// a copy and never mutates the window.
func (m *Manager) Snapshot(user types.UserID, session types.SessionID) []model.Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, exists := m.windows[Key{User: user, Session: session}]
	if !exists {
		return []model.Turn{}
	}
	return w.snapshot()
}

// SessionLock returns the mutex serializing writes for one (user, session).
// Callers hold it across the whole exchange so that the turn pushes and the
// record append reflect a single consistent ordering.
func (m *Manager) SessionLock(user types.UserID, session types.SessionID) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key{User: user, Session: session}
	l, exists := m.locks[key]
	if !exists {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// ring is a fixed-capacity FIFO buffer of turns
type ring struct {
	buf   []model.Turn
	start int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]model.Turn, capacity)}
}

func (r *ring) push(t model.Turn) {
	if r.count == len(r.buf) {
		r.buf[r.start] = t
		r.start = (r.start + 1) % len(r.buf)
		return
	}
	r.buf[(r.start+r.count)%len(r.buf)] = t
	r.count++
}

func (r *ring) snapshot() []model.Turn {
	out := make([]model.Turn, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
