package ws

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend/entity"
	"backend/repository"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newHubServer(t *testing.T) (*httptest.Server, *services.ChatService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&entity.Chat{}, &entity.ChatMessage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := services.NewChatService(repository.NewChatRepository(db))
	hub := NewChatHub(svc)
	go hub.Run()

	// test stand-in for the auth middleware: user id from the uid query param
	fakeAuth := func(c *gin.Context) {
		c.Set("userId", utils.ParseID(c.Query("uid")))
		c.Next()
	}

	r := gin.New()
	r.GET("/ws", fakeAuth, hub.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, svc
}

func dial(t *testing.T, srv *httptest.Server, userID uint) *websocket.Conn {
	t.Helper()
	url := strings.Replace(srv.URL, "http", "ws", 1) + fmt.Sprintf("/ws?uid=%d", userID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial user %d: %v", userID, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func joinChat(t *testing.T, conn *websocket.Conn, chatID uint) {
	t.Helper()
	if err := conn.WriteJSON(ClientEvent{Event: "join-chat", ChatID: chatID}); err != nil {
		t.Fatalf("join-chat: %v", err)
	}
	evt := readEvent(t, conn)
	if evt.Event != "chat-joined" || evt.ChatID != chatID {
		t.Fatalf("join ack = %+v", evt)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) *ServerEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt ServerEvent
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return &evt
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var evt ServerEvent
	if err := conn.ReadJSON(&evt); err == nil {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestBroadcastReachesAllRoomSubscribersOnly(t *testing.T) {
	srv, svc := newHubServer(t)
	chat1, _ := svc.FindOrCreate(1, 2)
	chat2, _ := svc.FindOrCreate(3, 4)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)
	carol := dial(t, srv, 3)

	joinChat(t, alice, chat1.ID)
	joinChat(t, bob, chat1.ID)
	joinChat(t, carol, chat2.ID)

	if err := alice.WriteJSON(ClientEvent{Event: "send-message", ChatID: chat1.ID, Body: "hello"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	for _, conn := range []*websocket.Conn{alice, bob} {
		evt := readEvent(t, conn)
		if evt.Event != "new-message" || evt.ChatID != chat1.ID {
			t.Fatalf("event = %+v", evt)
		}
		if evt.Message.Body != "hello" || evt.Message.SenderID != 1 {
			t.Fatalf("message = %+v", evt.Message)
		}
		if evt.Message.ID == 0 {
			t.Fatal("broadcast message missing server-assigned id")
		}
	}
	expectSilence(t, carol)
}

func TestSenderBoundToSession(t *testing.T) {
	srv, svc := newHubServer(t)
	chat, _ := svc.FindOrCreate(1, 2)

	alice := dial(t, srv, 1)
	joinChat(t, alice, chat.ID)

	// a spoofed senderId in the frame is ignored
	frame := fmt.Sprintf(`{"event":"send-message","chatId":%d,"senderId":999,"body":"hi"}`, chat.ID)
	if err := alice.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("send: %v", err)
	}

	evt := readEvent(t, alice)
	if evt.Message.SenderID != 1 {
		t.Fatalf("senderId = %d, want session user 1", evt.Message.SenderID)
	}
}

func TestSendToMissingChatIsDropped(t *testing.T) {
	srv, svc := newHubServer(t)
	chat, _ := svc.FindOrCreate(1, 2)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)
	joinChat(t, alice, chat.ID)
	joinChat(t, bob, chat.ID)

	if err := alice.WriteJSON(ClientEvent{Event: "send-message", ChatID: 999, Body: "void"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	expectSilence(t, alice)

	// The server keeps reading after the drop. Alice's read deadline has
	// expired, so delivery is observed through bob and the store.
	if err := alice.WriteJSON(ClientEvent{Event: "send-message", ChatID: chat.ID, Body: "still here"}); err != nil {
		t.Fatalf("send after drop: %v", err)
	}
	if evt := readEvent(t, bob); evt.Message.Body != "still here" {
		t.Fatalf("message = %+v", evt.Message)
	}

	stored, err := svc.Get(chat.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Messages) != 1 || stored.Messages[0].Body != "still here" {
		t.Fatalf("stored = %+v", stored.Messages)
	}
}

func TestLeaveChatStopsDelivery(t *testing.T) {
	srv, svc := newHubServer(t)
	chat, _ := svc.FindOrCreate(1, 2)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)
	joinChat(t, alice, chat.ID)
	joinChat(t, bob, chat.ID)

	if err := bob.WriteJSON(ClientEvent{Event: "leave-chat", ChatID: chat.ID}); err != nil {
		t.Fatalf("leave: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := alice.WriteJSON(ClientEvent{Event: "send-message", ChatID: chat.ID, Body: "bye"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if evt := readEvent(t, alice); evt.Message.Body != "bye" {
		t.Fatalf("message = %+v", evt.Message)
	}
	expectSilence(t, bob)
}

// Order observed by a subscriber matches the persisted order.
func TestBroadcastOrderMatchesStore(t *testing.T) {
	srv, svc := newHubServer(t)
	chat, _ := svc.FindOrCreate(1, 2)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)
	joinChat(t, alice, chat.ID)
	joinChat(t, bob, chat.ID)

	bodies := []string{"one", "two", "three"}
	for _, b := range bodies {
		if err := alice.WriteJSON(ClientEvent{Event: "send-message", ChatID: chat.ID, Body: b}); err != nil {
			t.Fatalf("send %q: %v", b, err)
		}
	}

	var seen []string
	for range bodies {
		seen = append(seen, readEvent(t, bob).Message.Body)
	}

	stored, err := svc.Get(chat.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for i, m := range stored.Messages {
		if seen[i] != m.Body {
			t.Fatalf("observed order %v != stored order %v", seen, stored.Messages)
		}
	}
}
