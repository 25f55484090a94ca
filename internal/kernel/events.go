package kernel

import (
	"sync"

	"golang.org/x/time/rate"
)

// EventType enumerates the event kinds recorded in the audit stream.
type EventType int

const (
	EventTick EventType = iota
	EventShipSpawned
	EventShipDestroyed
	EventBulletFired
	EventMissileLaunched
	EventAgentFault
	EventInvalidIntent
	EventMatchStatus
)

// Event is one entry in the match's audit log, carried alongside snapshots
// so renderer/replay consumers can show faults, kills and status changes
// without re-deriving them from raw state diffs.
type Event struct {
	Tick    uint64
	Type    EventType
	Ship    Handle
	Message string
}

const eventBufferSize = 1024

// EventLog is a rate-limited circular buffer of Events, adapted from
// internal/game/event_log.go: a storm of identical per-ship faults (e.g. a
// misbehaving agent binary re-faulting every tick before its ship is
// garbage collected) is throttled per fault kind rather than flooding the
// stream or blocking the tick loop.
type EventLog struct {
	mu      sync.Mutex
	buf     []Event
	next    int
	count   int
	total   uint64
	dropped uint64

	limiters sync.Map // key: EventType -> *rate.Limiter
}

// NewEventLog creates an empty log sized to eventBufferSize.
func NewEventLog() *EventLog {
	return &EventLog{buf: make([]Event, eventBufferSize)}
}

func (l *EventLog) limiterFor(t EventType) *rate.Limiter {
	if v, ok := l.limiters.Load(t); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(20), 20) // 20 events/sec burst 20, per kind
	actual, _ := l.limiters.LoadOrStore(t, lim)
	return actual.(*rate.Limiter)
}

// Emit appends an event if its kind's rate limiter allows it; always
// allows EventTick and EventMatchStatus through since those are one per
// tick by construction, not attacker/fault-controlled.
func (l *EventLog) Emit(tick uint64, typ EventType, ship Handle, message string) {
	if typ != EventTick && typ != EventMatchStatus {
		if !l.limiterFor(typ).Allow() {
			l.mu.Lock()
			l.dropped++
			l.mu.Unlock()
			return
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf[l.next] = Event{Tick: tick, Type: typ, Ship: ship, Message: message}
	l.next = (l.next + 1) % len(l.buf)
	if l.count < len(l.buf) {
		l.count++
	}
	l.total++
}

// Recent returns up to n most recent events, oldest first.
func (l *EventLog) Recent(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > l.count {
		n = l.count
	}
	out := make([]Event, n)
	start := (l.next - n + len(l.buf)) % len(l.buf)
	for i := 0; i < n; i++ {
		out[i] = l.buf[(start+i)%len(l.buf)]
	}
	return out
}

// TotalCount returns the number of events ever recorded; events suppressed
// by rate limiting are not included (see DroppedCount).
func (l *EventLog) TotalCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// DroppedCount returns the number of events suppressed by rate limiting.
func (l *EventLog) DroppedCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
