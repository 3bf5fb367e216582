package eventbus

import (
	"encoding/json"
	"sync"
)

type (
	// Bus fans firewall operation events out to registered listeners. The
	// HTTP layer uses it to stream operation progress, the docker sync
	// integration to report applied rules.
	Bus interface {
		Register(topic string) chan Event
		// Deregister removes a listener registered for topic and closes its
		// channel. Listeners must deregister when done or their channel
		// entry stays on the topic forever.
		Deregister(topic string, ch chan Event)
		Broadcast(topic string, evType Type, message string)
		BroadcastWithData(topic string, evType Type, message string, data []byte)
	}

	Event struct {
		Type    Type            `json:"type"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}

	Type string
)

const (
	Error   Type = "error"
	Info    Type = "info"
	Applied Type = "applied"
	Skipped Type = "skipped"

	// TopicRules receives one event per mutating firewall operation.
	TopicRules = "rules"
)

type eventPublisher struct {
	listeners map[string][]chan Event
	lock      sync.Mutex
}

func New() Bus {
	return &eventPublisher{
		listeners: make(map[string][]chan Event),
	}
}

func (e *eventPublisher) Register(topic string) chan Event {
	e.lock.Lock()
	defer e.lock.Unlock()

	ch := make(chan Event, 100)
	e.listeners[topic] = append(e.listeners[topic], ch)
	return ch
}

func (e *eventPublisher) Deregister(topic string, ch chan Event) {
	e.lock.Lock()
	defer e.lock.Unlock()

	listeners := e.listeners[topic]
	for i, next := range listeners {
		if next == ch {
			e.listeners[topic] = append(listeners[:i], listeners[i+1:]...)
			close(ch)
			return
		}
	}
}

func (e *eventPublisher) Broadcast(topic string, evType Type, message string) {
	e.BroadcastWithData(topic, evType, message, nil)
}

// BroadcastWithData holds the lock through the sends so a concurrent
// Deregister cannot close a channel mid-send. Sends never block.
func (e *eventPublisher) BroadcastWithData(topic string, evType Type, message string, data []byte) {
	e.lock.Lock()
	defer e.lock.Unlock()
	listeners := e.listeners[topic]

	ev := Event{
		Type:    evType,
		Message: message,
		Data:    data,
	}

	for _, ch := range listeners {
		select {
		case ch <- ev:
		default:
			// a stalled listener must not block firewall operations
		}
	}
}
