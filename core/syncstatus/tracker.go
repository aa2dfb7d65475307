// Package syncstatus tracks the state of a student's portal sync and
// notifies subscribers as it changes, so API clients can poll or stream
// progress instead of sharing a mutable flag.
package syncstatus

import (
	"sync"
	"time"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Status is a point-in-time snapshot of one student's sync.
type Status struct {
	StudentID string    `json:"student_id"`
	State     State     `json:"state"`
	Subjects  int       `json:"subjects"`  // subjects synced so far
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Tracker fans sync status updates out to subscribers. The zero value is
// not usable; use NewTracker.
type Tracker struct {
	mu      sync.Mutex
	current map[string]Status           // last status per student
	subs    map[string]map[int]chan Status // per-student subscriber channels
	nextID  int
}

func NewTracker() *Tracker {
	return &Tracker{
		current: make(map[string]Status),
		subs:    make(map[string]map[int]chan Status),
	}
}

// Publish records a new status and notifies the student's subscribers.
// Slow subscribers miss intermediate updates rather than block the sync.
func (t *Tracker) Publish(status Status) {
	status.UpdatedAt = time.Now().UTC()

	t.mu.Lock()
	t.current[status.StudentID] = status
	chans := make([]chan Status, 0, len(t.subs[status.StudentID]))
	for _, ch := range t.subs[status.StudentID] {
		chans = append(chans, ch)
	}
	t.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- status:
		default:
		}
	}
}

// Current returns the last published status for a student. Students that
// never synced are reported as idle.
func (t *Tracker) Current(studentID string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	if status, ok := t.current[studentID]; ok {
		return status
	}
	return Status{StudentID: studentID, State: StateIdle}
}

// Subscribe registers for a student's updates. The returned cancel func
// must be called to release the subscription.
func (t *Tracker) Subscribe(studentID string) (<-chan Status, func()) {
	ch := make(chan Status, 8)

	t.mu.Lock()
	t.nextID++
	id := t.nextID
	if t.subs[studentID] == nil {
		t.subs[studentID] = make(map[int]chan Status)
	}
	t.subs[studentID][id] = ch
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if chans, ok := t.subs[studentID]; ok {
			delete(chans, id)
			if len(chans) == 0 {
				delete(t.subs, studentID)
			}
		}
	}
	return ch, cancel
}
