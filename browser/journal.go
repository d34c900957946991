package browser

import (
	"sort"
	"sync"
)

// EventJournal re-serializes session events that are delivered
// asynchronously and possibly out of order, such as CDP console and network
// events arriving on listener goroutines, or the static driver's request
// records. Events carry a 1-based sequence number; the journal releases
// them on its channel strictly in sequence order, holding back any event
// whose predecessors have not arrived yet.
type EventJournal struct {
	C        chan Event
	lastSeq  int
	heldBack []Event
	lock     sync.Mutex
	closed   bool
}

// Event is one session-level occurrence worth recording in debug output.
type Event struct {
	Seq     int
	Message string
}

func NewEventJournal(channelSize int) *EventJournal {
	return &EventJournal{C: make(chan Event, channelSize)}
}

// Record accepts an event. If it is the next event in sequence it is
// released immediately, along with any held-back successors that are now
// contiguous; otherwise it is held back. Events recorded after Close are
// dropped, since listener goroutines can outlive the session that owns
// the journal.
func (j *EventJournal) Record(seq int, message string) {
	j.lock.Lock()
	if j.closed {
		j.lock.Unlock()
		return
	}
	if seq > j.lastSeq+1 {
		j.heldBack = append(j.heldBack, Event{Seq: seq, Message: message})
		sort.Slice(j.heldBack, func(a, b int) bool { return j.heldBack[a].Seq < j.heldBack[b].Seq })
		j.lock.Unlock()
		return
	}
	j.lastSeq = seq
	j.C <- Event{Seq: seq, Message: message}
	for len(j.heldBack) > 0 {
		next := j.heldBack[0]
		if next.Seq != j.lastSeq+1 {
			break
		}
		j.heldBack = j.heldBack[1:]
		j.lastSeq++
		j.C <- next
	}
	j.lock.Unlock()
}

// HeldBack returns the events still waiting for a predecessor, in
// sequence order.
func (j *EventJournal) HeldBack() []Event {
	j.lock.Lock()
	ret := append([]Event(nil), j.heldBack...)
	j.lock.Unlock()
	return ret
}

// Drain forwards every already-released event to the given logger without
// blocking, in order. Drivers call this when a session ends so the events
// land in the test's captured debug output.
func (j *EventJournal) Drain(log func(format string, args ...interface{})) {
	for {
		select {
		case ev, ok := <-j.C:
			if !ok {
				return
			}
			log("browser event #%d: %s", ev.Seq, ev.Message)
		default:
			return
		}
	}
}

func (j *EventJournal) Close() {
	j.lock.Lock()
	alreadyClosed := j.closed
	j.closed = true
	j.lock.Unlock()
	if !alreadyClosed {
		close(j.C)
	}
}
