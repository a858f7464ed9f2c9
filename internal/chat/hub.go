package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/sajidk24/recipeshare/backend/internal/repositories"
)

// Client event names.
const (
	EventJoinRoom       = "joinRoom"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
)

// Event is the envelope exchanged over the websocket channel.
type Event struct {
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	Data  *MessagePayload `json:"data,omitempty"`
}

// MessagePayload carries a chat message through a room.
type MessagePayload struct {
	Room     string `json:"room"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
}

// Hub is the room registry for the messaging relay. It owns the only shared
// mutable state in the chat path: which connections are joined to which rooms.
// Rooms are ephemeral string keys; membership exists only in process memory
// and is cleared per connection on disconnect. A Hub is constructed once per
// server process and injected wherever connections are accepted.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	joined map[*Client]map[string]struct{}

	messages repositories.MessageRepository
}

// NewHub creates a Hub persisting messages through the given repository.
func NewHub(messages repositories.MessageRepository) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		joined:   make(map[*Client]map[string]struct{}),
		messages: messages,
	}
}

// Register adds a connected client to the registry with no room memberships.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.joined[c]; !ok {
		h.joined[c] = make(map[string]struct{})
	}
}

// Join adds the client to a room. Joining is additive: a client may be a
// member of any number of rooms at once, and there is no leave operation
// short of disconnecting.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.joined[c]; !ok {
		h.joined[c] = make(map[string]struct{})
	}
	h.joined[c][room] = struct{}{}

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

// Disconnect removes the client from every room it joined and closes its send
// channel. Safe to call once per registered client.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.joined[c]
	if !ok {
		return
	}
	for room := range rooms {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.joined, c)
	close(c.send)
}

// Broadcast fans a payload out to every client currently joined to the room,
// the sender's own connections included. The sends happen under the read
// lock: Disconnect closes send channels under the write lock, so a channel
// can never be closed while a broadcast is writing to it. Clients with a
// full send buffer are skipped; delivery is best effort and never blocks
// the caller.
func (h *Hub) Broadcast(room string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- payload:
		default:
			log.Printf("chat: dropping message for slow client in room %q", room)
		}
	}
}

// HandleEvent dispatches a raw client event: joinRoom updates the registry,
// sendMessage relays to the room and persists the message. Unknown or
// malformed events are ignored.
func (h *Hub) HandleEvent(c *Client, raw []byte) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("chat: invalid event: %v", err)
		return
	}

	switch ev.Event {
	case EventJoinRoom:
		h.Join(c, ev.Room)
	case EventSendMessage:
		if ev.Data == nil {
			return
		}
		h.relay(ev.Data)
	}
}

// relay broadcasts the message to its room, then persists it asynchronously.
// The broadcast has already happened by the time the write runs: a storage
// failure is logged for operators but never undoes or blocks delivery.
func (h *Hub) relay(payload *MessagePayload) {
	out, err := json.Marshal(Event{Event: EventReceiveMessage, Data: payload})
	if err != nil {
		log.Printf("chat: marshal payload: %v", err)
		return
	}
	h.Broadcast(payload.Room, out)

	go h.persist(payload)
}

func (h *Hub) persist(payload *MessagePayload) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := &models.Message{
		Sender:    payload.Sender,
		Receiver:  payload.Receiver,
		Body:      payload.Message,
		Timestamp: time.Now(),
	}
	if err := h.messages.CreateMessage(ctx, msg); err != nil {
		log.Printf("chat: failed to persist message from %s to %s: %v", payload.Sender, payload.Receiver, err)
	}
}
