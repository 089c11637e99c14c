package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"ekanwe/internal/domain/repository"
	"ekanwe/internal/infrastructure/firebase"
	ws "ekanwe/internal/infrastructure/websocket"
	"ekanwe/pkg/errors"
	"ekanwe/pkg/logger"
)

// WebSocketHandler upgrades authenticated clients and lets them subscribe to
// store snapshots. Topics:
//
//	deals          the whole deals collection
//	chats/<id>     one chat thread the caller participates in
//	userchats      the caller's own inbox document
//
// Each subscription runs its own watch goroutine; unsubscribing or closing
// the socket tears it down. In-flight writes are unaffected.
type WebSocketHandler struct {
	wsManager    *ws.Manager
	firebaseAuth *firebase.FirebaseAuthClient
	watcher      repository.SnapshotWatcher
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, firebaseAuth *firebase.FirebaseAuthClient, watcher repository.SnapshotWatcher) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:    wsManager,
		firebaseAuth: firebaseAuth,
		watcher:      watcher,
	}
}

type subscriptionFrame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

type snapshotFrame struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection"`
	ID         string      `json:"id,omitempty"`
	Data       interface{} `json:"data"`
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Token query parameter is required", nil)
	}

	userID, err := h.firebaseAuth.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	connCtx, cancel := context.WithCancel(context.Background())

	subs := &subscriptionSet{cancels: make(map[string]context.CancelFunc)}

	go func() {
		client.ReadPump(h.wsManager, func(frame []byte) {
			h.handleFrame(connCtx, client, subs, frame)
		})
		cancel()
	}()
	go client.WritePump()

	return nil
}

func (h *WebSocketHandler) handleFrame(ctx context.Context, client *ws.Client, subs *subscriptionSet, frame []byte) {
	var req subscriptionFrame
	if err := json.Unmarshal(frame, &req); err != nil {
		logger.Warn("Malformed websocket frame from %s: %v", client.UserID, err)
		return
	}

	switch req.Action {
	case "subscribe":
		h.subscribe(ctx, client, subs, req.Topic)
	case "unsubscribe":
		subs.remove(req.Topic)
	default:
		logger.Warn("Unknown websocket action %q from %s", req.Action, client.UserID)
	}
}

func (h *WebSocketHandler) subscribe(ctx context.Context, client *ws.Client, subs *subscriptionSet, topic string) {
	collection, id, ok := resolveTopic(topic, client.UserID)
	if !ok {
		logger.Warn("Rejected websocket topic %q for %s", topic, client.UserID)
		return
	}

	watchCtx, ok := subs.add(ctx, topic)
	if !ok {
		return // already subscribed
	}

	send := func(payload snapshotFrame) {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to encode snapshot frame: %v", err)
			return
		}
		h.wsManager.SendToUser(client.UserID, data)
	}

	if id == "" {
		go h.watcher.WatchCollection(watchCtx, collection, func(docs []map[string]interface{}) {
			send(snapshotFrame{Type: "snapshot", Collection: collection, Data: docs})
		})
	} else {
		go h.watcher.WatchDocument(watchCtx, collection, id, func(data map[string]interface{}) {
			send(snapshotFrame{Type: "snapshot", Collection: collection, ID: id, Data: data})
		})
	}
}

// resolveTopic maps a client topic onto a store collection and document id,
// enforcing that chat topics name a thread the caller belongs to and that
// inbox topics only ever resolve to the caller's own document.
func resolveTopic(topic, userID string) (collection, id string, ok bool) {
	switch {
	case topic == "deals":
		return "deals", "", true
	case topic == "userchats":
		return "userchats", userID, true
	case strings.HasPrefix(topic, "chats/"):
		chatID := strings.TrimPrefix(topic, "chats/")
		// The chat id is the two participant uids joined in sorted order,
		// so a participant's own uid is its prefix or suffix.
		if chatID == "" || (!strings.HasPrefix(chatID, userID) && !strings.HasSuffix(chatID, userID)) {
			return "", "", false
		}
		return "chats", chatID, true
	}
	return "", "", false
}

// subscriptionSet tracks one connection's active watches.
type subscriptionSet struct {
	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func (s *subscriptionSet) add(parent context.Context, topic string) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cancels[topic]; exists {
		return nil, false
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancels[topic] = cancel
	return ctx, true
}

func (s *subscriptionSet) remove(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, exists := s.cancels[topic]; exists {
		cancel()
		delete(s.cancels, topic)
	}
}
