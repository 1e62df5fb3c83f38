// Package client is the conversation controller used by frontends and tests:
// it keeps the chat-list / conversation view state, one websocket connection
// per session, and renders sent messages only when the hub broadcasts them
// back, so the displayed order always matches the persisted order.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"backend/entity"
	"backend/ws"

	"github.com/gorilla/websocket"
)

type Mode int

const (
	ModeChatList Mode = iota
	ModeConversation
)

// ChatSummary is one row of the chat-list view.
type ChatSummary struct {
	ChatID      uint
	PartnerID   uint
	PartnerName string
	Preview     string
}

type Conversation struct {
	baseURL string // http(s)://host[:port]
	token   string
	userID  uint
	http    *http.Client

	// OnMessage fires for every broadcast rendered into the open conversation.
	OnMessage func(entity.ChatMessage)

	mu        sync.Mutex
	conn      *websocket.Conn
	mode      Mode
	chatID    uint
	partnerID uint
	messages  []entity.ChatMessage
	names     map[uint]string
	joinAck   chan uint
}

func New(baseURL, token string, userID uint) *Conversation {
	return &Conversation{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		userID:  userID,
		http:    &http.Client{},
		mode:    ModeChatList,
		names:   make(map[uint]string),
	}
}

// Connect opens the session's websocket and starts dispatching broadcasts.
func (cv *Conversation) Connect() error {
	wsURL := strings.Replace(cv.baseURL, "http", "ws", 1) + "/ws?token=" + cv.token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	cv.mu.Lock()
	cv.conn = conn
	cv.mu.Unlock()

	go cv.readLoop(conn)
	return nil
}

func (cv *Conversation) Close() error {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	if cv.conn == nil {
		return nil
	}
	err := cv.conn.Close()
	cv.conn = nil
	return err
}

func (cv *Conversation) readLoop(conn *websocket.Conn) {
	for {
		var evt ws.ServerEvent
		if err := conn.ReadJSON(&evt); err != nil {
			return
		}
		if evt.Event == "chat-joined" {
			cv.mu.Lock()
			if cv.joinAck != nil && evt.ChatID == cv.chatID {
				cv.joinAck <- evt.ChatID
				cv.joinAck = nil
			}
			cv.mu.Unlock()
			continue
		}
		if evt.Event != "new-message" || evt.Message == nil {
			continue
		}
		cv.mu.Lock()
		rendered := cv.mode == ModeConversation && evt.ChatID == cv.chatID
		if rendered {
			cv.messages = append(cv.messages, *evt.Message)
		}
		cv.mu.Unlock()
		if rendered && cv.OnMessage != nil {
			cv.OnMessage(*evt.Message)
		}
	}
}

// ChatList loads every chat for the session user with partner name and
// last-message preview.
func (cv *Conversation) ChatList() ([]ChatSummary, error) {
	var out struct {
		Success bool `json:"success"`
		Data    []struct {
			ID           uint                 `json:"id"`
			Participants []uint               `json:"participants"`
			Messages     []entity.ChatMessage `json:"messages"`
		} `json:"data"`
	}
	if err := cv.getJSON(fmt.Sprintf("/api/chats/user/%d", cv.userID), &out); err != nil {
		return nil, err
	}

	list := make([]ChatSummary, 0, len(out.Data))
	for _, chat := range out.Data {
		partner := uint(0)
		for _, p := range chat.Participants {
			if p != cv.userID {
				partner = p
			}
		}
		preview := "No messages yet"
		if len(chat.Messages) > 0 {
			preview = chat.Messages[len(chat.Messages)-1].Body
		}
		list = append(list, ChatSummary{
			ChatID:      chat.ID,
			PartnerID:   partner,
			PartnerName: cv.partnerName(partner),
			Preview:     preview,
		})
	}
	return list, nil
}

// Open switches to conversation mode: load the authoritative history,
// subscribe to the room, and wait for the hub's join ack. Once Open returns,
// every later broadcast for the chat is rendered.
func (cv *Conversation) Open(chatID, partnerID uint) error {
	cv.mu.Lock()
	if cv.mode == ModeConversation && cv.chatID != 0 {
		cv.writeEvent("leave-chat", cv.chatID, "")
	}
	cv.mu.Unlock()

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			ID       uint                 `json:"id"`
			Messages []entity.ChatMessage `json:"messages"`
		} `json:"data"`
	}
	if err := cv.getJSON(fmt.Sprintf("/api/chats/%d", chatID), &out); err != nil {
		return err
	}

	ack := make(chan uint, 1)
	cv.mu.Lock()
	cv.mode = ModeConversation
	cv.chatID = chatID
	cv.partnerID = partnerID
	cv.messages = out.Data.Messages
	cv.joinAck = ack
	err := cv.writeEvent("join-chat", chatID, "")
	cv.mu.Unlock()
	if err != nil {
		return err
	}

	select {
	case <-ack:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timed out joining chat %d", chatID)
	}
}

// OpenForRide resolves (or creates) the chat with the ride's initiator before
// subscribing.
func (cv *Conversation) OpenForRide(rideID uint) error {
	var ride struct {
		Success bool `json:"success"`
		Data    struct {
			InitiatorID uint `json:"initiatorId"`
		} `json:"data"`
	}
	if err := cv.getJSON(fmt.Sprintf("/api/rides/%d", rideID), &ride); err != nil {
		return err
	}

	var chat struct {
		Success bool `json:"success"`
		Data    struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	body := fmt.Sprintf(`{"participants":[%d,%d]}`, cv.userID, ride.Data.InitiatorID)
	if err := cv.postJSON("/api/chats", body, &chat); err != nil {
		return err
	}
	return cv.Open(chat.Data.ID, ride.Data.InitiatorID)
}

// Back leaves the room and returns to the chat list.
func (cv *Conversation) Back() error {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	var err error
	if cv.mode == ModeConversation && cv.chatID != 0 {
		err = cv.writeEvent("leave-chat", cv.chatID, "")
	}
	cv.mode = ModeChatList
	cv.chatID = 0
	cv.partnerID = 0
	cv.messages = nil
	return err
}

// Send is fire-and-forget; the message shows up in Messages only once the
// hub broadcasts the persisted record back.
func (cv *Conversation) Send(body string) error {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	if cv.mode != ModeConversation || cv.chatID == 0 {
		return fmt.Errorf("no open conversation")
	}
	return cv.writeEvent("send-message", cv.chatID, body)
}

// Messages returns a snapshot of the rendered history.
func (cv *Conversation) Messages() []entity.ChatMessage {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	out := make([]entity.ChatMessage, len(cv.messages))
	copy(out, cv.messages)
	return out
}

func (cv *Conversation) Mode() Mode {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.mode
}

// writeEvent requires cv.mu held: gorilla allows one concurrent writer.
func (cv *Conversation) writeEvent(event string, chatID uint, body string) error {
	if cv.conn == nil {
		return fmt.Errorf("not connected")
	}
	return cv.conn.WriteJSON(ws.ClientEvent{Event: event, ChatID: chatID, Body: body})
}

func (cv *Conversation) partnerName(partnerID uint) string {
	if partnerID == 0 {
		return "Unknown"
	}
	if name, ok := cv.names[partnerID]; ok {
		return name
	}
	var out struct {
		Success bool `json:"success"`
		Data    struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := cv.getJSON(fmt.Sprintf("/api/users/%d", partnerID), &out); err != nil || out.Data.Name == "" {
		return "User"
	}
	cv.names[partnerID] = out.Data.Name
	return out.Data.Name
}

func (cv *Conversation) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, cv.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cv.token)
	res, err := cv.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("GET %s: status %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (cv *Conversation) postJSON(path, body string, out any) error {
	req, err := http.NewRequest(http.MethodPost, cv.baseURL+path, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cv.token)
	req.Header.Set("Content-Type", "application/json")
	res, err := cv.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("POST %s: status %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
