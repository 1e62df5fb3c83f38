package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"backend/entity"
	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatHub multiplexes websocket connections into per-chat broadcast groups.
// One connection per session; a connection may subscribe to many chats.
type ChatHub struct {
	rooms      map[uint]map[*websocket.Conn]bool // chatID -> subscribers
	conns      map[*websocket.Conn]map[uint]bool // conn -> subscribed chatIDs
	register   chan Subscription
	unregister chan Subscription
	closed     chan *websocket.Conn
	broadcast  chan BroadcastMessage
	mu         sync.Mutex
	service    *services.ChatService
}

// Subscription couples one connection with one chat room.
type Subscription struct {
	Conn   *websocket.Conn
	ChatID uint
	UserID uint
}

// BroadcastMessage is a persisted message fanned out to a room.
type BroadcastMessage struct {
	ChatID  uint
	Message *entity.ChatMessage
}

// ClientEvent is the client→server frame: join-chat, leave-chat, send-message.
type ClientEvent struct {
	Event  string `json:"event"`
	ChatID uint   `json:"chatId"`
	Body   string `json:"body,omitempty"`
}

// ServerEvent is the server→client frame: new-message fan-outs, plus the
// chat-joined ack that confirms a subscription is active.
type ServerEvent struct {
	Event   string              `json:"event"`
	ChatID  uint                `json:"chatId"`
	Message *entity.ChatMessage `json:"message,omitempty"`
}

func NewChatHub(service *services.ChatService) *ChatHub {
	return &ChatHub{
		rooms:      make(map[uint]map[*websocket.Conn]bool),
		conns:      make(map[*websocket.Conn]map[uint]bool),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		closed:     make(chan *websocket.Conn),
		broadcast:  make(chan BroadcastMessage),
		service:    service,
	}
}

// Run serializes all room membership changes and fan-outs.
func (h *ChatHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.rooms[sub.ChatID] == nil {
				h.rooms[sub.ChatID] = make(map[*websocket.Conn]bool)
			}
			h.rooms[sub.ChatID][sub.Conn] = true
			if h.conns[sub.Conn] == nil {
				h.conns[sub.Conn] = make(map[uint]bool)
			}
			h.conns[sub.Conn][sub.ChatID] = true
			h.mu.Unlock()
			// Joins are acked once the subscription is in place; messages
			// broadcast after the ack are guaranteed to reach this connection.
			if err := sub.Conn.WriteJSON(ServerEvent{Event: "chat-joined", ChatID: sub.ChatID}); err != nil {
				log.Printf("ws write error: %v", err)
			}

		case sub := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[sub.ChatID]; ok {
				delete(room, sub.Conn)
			}
			if subs, ok := h.conns[sub.Conn]; ok {
				delete(subs, sub.ChatID)
			}
			h.mu.Unlock()

		case conn := <-h.closed:
			// A closed connection implicitly leaves every room.
			h.mu.Lock()
			for chatID := range h.conns[conn] {
				delete(h.rooms[chatID], conn)
			}
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close()

		case msg := <-h.broadcast:
			h.mu.Lock()
			evt := ServerEvent{Event: "new-message", ChatID: msg.ChatID, Message: msg.Message}
			for conn := range h.rooms[msg.ChatID] {
				if err := conn.WriteJSON(evt); err != nil {
					log.Printf("ws write error: %v", err)
					for chatID := range h.conns[conn] {
						delete(h.rooms[chatID], conn)
					}
					delete(h.conns, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws (one connection per session, rooms joined via events)
func (h *ChatHub) HandleWebSocket(c *gin.Context) {
	userIDVal, _ := c.Get("userId")
	userID, _ := userIDVal.(uint)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	go h.listenEvents(conn, userID)
}

// listenEvents reads client frames until the connection drops.
func (h *ChatHub) listenEvents(conn *websocket.Conn, userID uint) {
	defer func() { h.closed <- conn }()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ws read error: %v", err)
			}
			break
		}

		var evt ClientEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			log.Printf("invalid ws payload: %v", err)
			continue
		}

		switch evt.Event {
		case "join-chat":
			h.register <- Subscription{Conn: conn, ChatID: evt.ChatID, UserID: userID}
		case "leave-chat":
			h.unregister <- Subscription{Conn: conn, ChatID: evt.ChatID, UserID: userID}
		case "send-message":
			// Sender identity comes from the session, never from the frame.
			msg, err := h.service.Append(evt.ChatID, userID, evt.Body)
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					log.Printf("ws send to missing chat %d dropped", evt.ChatID)
				} else {
					log.Printf("save msg error: %v", err)
				}
				continue
			}
			h.broadcast <- BroadcastMessage{ChatID: evt.ChatID, Message: msg}
		default:
			log.Printf("unknown ws event: %q", evt.Event)
		}
	}
}
