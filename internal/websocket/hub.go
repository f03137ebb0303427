package eventws

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
)

const (
	EventOnboardingComplete = "onboarding_complete"
	EventQuestCompleted     = "quest_completed"
	EventRewardRedeemed     = "reward_redeemed"
	EventLevelUp            = "level_up"
)

// Event is a one-way push notification to a user's dashboard connections.
type Event struct {
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Points    int    `json:"points,omitempty"`
	Level     string `json:"level,omitempty"`
	Timestamp string `json:"timestamp"`
}

type envelope struct {
	userID string
	event  *Event
}

type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case env := <-h.broadcast:
			h.deliver(env.userID, env.event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish queues an event for every open connection of the given user.
// Delivery is best-effort; nobody connected means the event is dropped.
func (h *Hub) Publish(userID int64, event Event) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	select {
	case h.broadcast <- envelope{userID: strconv.FormatInt(userID, 10), event: &event}:
	default:
		log.Printf("event hub: dropping %s event for user %d", event.Type, userID)
	}
}

func (h *Hub) deliver(userID string, event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("event hub encode: %v", err)
		return
	}

	set, ok := h.clients[userID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

// ReadPump drains inbound frames until the connection drops. The socket is
// push-only; client payloads are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
