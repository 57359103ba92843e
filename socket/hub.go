package socket

import (
	"careerboard/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	ConnectedType = "CONNECTED" // Sent once the hub has registered the client
	CreatedType   = "CREATED"   // A row was inserted
	UpdatedType   = "UPDATED"   // A row was changed

	ResourceJobRole = "job_role"
	ResourcePost    = "post"
)

// Event is a change notification. Clients only receive events for rows
// their caller can access.
type Event struct {
	Type     string          `json:"type"`
	Resource string          `json:"resource,omitempty"`
	ID       uuid.UUID       `json:"id"`
	OwnerID  uuid.UUID       `json:"owner_id"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Hub fans events out to connected clients. All client bookkeeping happens
// on the goroutine running Run.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			hello, _ := json.Marshal(Event{Type: ConnectedType, ID: client.Caller.ID, OwnerID: client.Caller.ID})
			client.Send <- hello

		case client := <-h.Unregister:
			h.remove(client)

		case evt := <-h.Broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}
			for client := range h.clients {
				if !client.Caller.CanAccess(evt.OwnerID) {
					continue
				}
				select {
				case client.Send <- payload:
				default:
					// A lagging client must not stall everyone else.
					logger.Sugar.Warnf("Client %s's send buffer is full. Disconnecting.", client.Caller.ID)
					h.remove(client)
				}
			}
		}
	}
}

// Publish queues evt without blocking the calling request. Events are
// dropped when the hub is saturated.
func (h *Hub) Publish(evt Event) {
	select {
	case h.Broadcast <- evt:
	default:
		logger.Sugar.Warnf("Hub buffer is full, dropping %s %s event for %s", evt.Resource, evt.Type, evt.ID)
	}
}

// NewEvent builds an event whose payload is the JSON form of row.
func NewEvent(eventType, resource string, id, ownerID uuid.UUID, row any) Event {
	payload, err := json.Marshal(row)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling %s event payload: %v", resource, err)
	}
	return Event{Type: eventType, Resource: resource, ID: id, OwnerID: ownerID, Payload: payload}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}
