package services

import (
	"sync"
	"time"

	"paper-review-api/config"

	"github.com/gorilla/websocket"
)

const activityWriteWait = 10 * time.Second

const (
	EventReviewerAssigned = "reviewer_assigned"
	EventReviewSubmitted  = "review_submitted"
	EventStatusChanged    = "status_changed"
	EventPaperSubmitted   = "paper_submitted"
)

// ActivityEvent is pushed to connected admin dashboards.
type ActivityEvent struct {
	Type      string    `json:"type"`
	PaperID   string    `json:"paperId"`
	Title     string    `json:"title,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Aggregate Aggregate `json:"aggregate"`
	At        time.Time `json:"at"`
}

// activitySendBuffer is how many events may queue for one slow subscriber
// before it is dropped.
const activitySendBuffer = 16

// Subscriber owns one websocket connection. Events are queued on send and
// written by a dedicated goroutine; mu serializes every write on conn.
type Subscriber struct {
	conn *websocket.Conn
	send chan ActivityEvent
	done chan struct{}
	once sync.Once
	mu   sync.Mutex
}

func (s *Subscriber) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(activityWriteWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func (s *Subscriber) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(activityWriteWait))
}

// Done is closed once the subscriber has been unregistered.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// ActivityHub fans activity events out to websocket subscribers.
type ActivityHub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

func NewActivityHub() *ActivityHub {
	return &ActivityHub{subscribers: make(map[*Subscriber]struct{})}
}

// Activity is the process-wide hub used by the HTTP layer.
var Activity = NewActivityHub()

// Register adds conn and starts its writer goroutine.
func (h *ActivityHub) Register(conn *websocket.Conn) *Subscriber {
	sub := &Subscriber{
		conn: conn,
		send: make(chan ActivityEvent, activitySendBuffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(sub)
	return sub
}

func (h *ActivityHub) writeLoop(sub *Subscriber) {
	for {
		select {
		case <-sub.done:
			return
		case event := <-sub.send:
			if err := sub.WriteJSON(event); err != nil {
				config.Logger.Debug().Err(err).Str("event", event.Type).Msg("dropping activity subscriber")
				h.Unregister(sub)
				return
			}
		}
	}
}

// Unregister removes sub and closes its connection once.
func (h *ActivityHub) Unregister(sub *Subscriber) {
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
	sub.once.Do(func() {
		close(sub.done)
		sub.conn.Close()
	})
}

func (h *ActivityHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish queues event for every subscriber without blocking. A subscriber
// whose queue is full is dropped.
func (h *ActivityHub) Publish(event ActivityEvent) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	h.mu.RLock()
	subs := make([]*Subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.send <- event:
		default:
			config.Logger.Warn().Str("event", event.Type).Msg("activity subscriber too slow, dropping")
			h.Unregister(sub)
		}
	}
}
