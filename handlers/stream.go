// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/personality-quiz/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Quizzes are embedded on arbitrary sites; sessions are protected by
	// their token instead.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans session events out to websocket subscribers.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*subscriber]struct{})}
}

// Subscribers reports how many connections follow a session.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

// Publish queues an event for every subscriber of the session. It never
// blocks; subscribers that cannot keep up are disconnected.
func (h *Hub) Publish(sessionID, eventType string, data any) {
	h.mu.RLock()
	room := h.rooms[sessionID]
	if len(room) == 0 {
		h.mu.RUnlock()
		return
	}

	msg, err := json.Marshal(models.StreamEvent{Type: eventType, Data: data})
	if err != nil {
		h.mu.RUnlock()
		slog.Error("failed to encode stream event", "type", eventType, "error", err)
		return
	}

	var slow []*subscriber
	for sub := range room {
		select {
		case sub.send <- msg:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		slog.Warn("stream subscriber too slow, disconnecting", "session_id", sessionID)
		h.unregister(sessionID, sub)
	}
}

func (h *Hub) register(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[*subscriber]struct{})
		h.rooms[sessionID] = room
	}
	room[sub] = struct{}{}
}

// unregister is safe to call more than once per subscriber.
func (h *Hub) unregister(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[sessionID]
	if _, ok := room[sub]; !ok {
		return
	}
	delete(room, sub)
	if len(room) == 0 {
		delete(h.rooms, sessionID)
	}
	// Publish only sends under the read lock, so nothing can be sending
	// on this channel now.
	close(sub.send)
}

// Serve upgrades the request and streams the session's events until the
// client goes away. initial is sent before any published event.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sessionID string, initial models.StreamEvent) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	if msg, err := json.Marshal(initial); err == nil {
		sub.send <- msg
	}
	h.register(sessionID, sub)

	go sub.writePump()
	sub.readPump()

	h.unregister(sessionID, sub)
	return nil
}

// readPump discards client messages; it exists to notice disconnects and
// answer pings.
func (s *subscriber) readPump() {
	defer s.conn.Close()
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("stream read error", "error", err)
			}
			return
		}
	}
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
