package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

const writeWait = 5 * time.Second

// Message frame sent to spectators
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// Announcement what the hotel learnt at dawn
type Announcement struct {
	Day  int    `json:"day"`
	Text string `json:"text"`
}

type spectator struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (sp *spectator) write(payload []byte) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if err := sp.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return sp.conn.WriteMessage(websocket.TextMessage, payload)
}

// WebSocketManager read-only feed of the engine's snapshots. It implements
// Notifier; spectators can watch but never send game input.
type WebSocketManager struct {
	connections   map[string]*spectator
	board         *models.BoardView
	announcements []Announcement
	mutex         sync.RWMutex
}

// NewWebSocketManager creates a feed without spectators.
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		connections:   make(map[string]*spectator),
		announcements: make([]Announcement, 0),
	}
}

// RegisterConnection adds a spectator and sends it the latest board.
func (wm *WebSocketManager) RegisterConnection(id string, conn *websocket.Conn) {
	sp := &spectator{conn: conn}

	wm.mutex.Lock()
	if old, exists := wm.connections[id]; exists {
		old.conn.Close()
	}
	wm.connections[id] = sp
	board := wm.board
	wm.mutex.Unlock()

	log.Info().Str("spectator", id).Msg("spectator connected")
	if board != nil {
		if payload, err := json.Marshal(Message{Type: "board", Content: board}); err == nil {
			if err := sp.write(payload); err != nil {
				wm.remove(id, sp)
				return
			}
		}
	}
	go wm.handleMessages(id, sp)
}

// Publish stores board as the latest snapshot and pushes it to every spectator.
func (wm *WebSocketManager) Publish(board models.BoardView) {
	wm.mutex.Lock()
	wm.board = &board
	wm.mutex.Unlock()
	wm.broadcast(Message{Type: "board", Content: board})
}

// Announce keeps the dawn announcement and pushes it to every spectator.
func (wm *WebSocketManager) Announce(day int, text string) {
	a := Announcement{Day: day, Text: text}
	wm.mutex.Lock()
	wm.announcements = append(wm.announcements, a)
	wm.mutex.Unlock()
	wm.broadcast(Message{Type: "announcement", Content: a})
}

// Board returns the latest snapshot, if any was published.
func (wm *WebSocketManager) Board() (models.BoardView, bool) {
	wm.mutex.RLock()
	defer wm.mutex.RUnlock()
	if wm.board == nil {
		return models.BoardView{}, false
	}
	return *wm.board, true
}

// Announcements returns every announcement so far.
func (wm *WebSocketManager) Announcements() []Announcement {
	wm.mutex.RLock()
	defer wm.mutex.RUnlock()
	out := make([]Announcement, len(wm.announcements))
	copy(out, wm.announcements)
	return out
}

// ConnectionCount counts connected spectators.
func (wm *WebSocketManager) ConnectionCount() int {
	wm.mutex.RLock()
	defer wm.mutex.RUnlock()
	return len(wm.connections)
}

func (wm *WebSocketManager) broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("type", msg.Type).Msg("broadcast marshal failed")
		return
	}

	wm.mutex.RLock()
	targets := make(map[string]*spectator, len(wm.connections))
	for id, sp := range wm.connections {
		targets[id] = sp
	}
	wm.mutex.RUnlock()

	for id, sp := range targets {
		if err := sp.write(payload); err != nil {
			log.Warn().Err(err).Str("spectator", id).Msg("broadcast failed")
			wm.remove(id, sp)
		}
	}
}

// RemoveConnection closes and forgets a spectator.
func (wm *WebSocketManager) RemoveConnection(id string) {
	wm.mutex.RLock()
	sp, exists := wm.connections[id]
	wm.mutex.RUnlock()
	if exists {
		wm.remove(id, sp)
	}
}

// remove drops sp only while it is still the connection registered under id.
func (wm *WebSocketManager) remove(id string, sp *spectator) {
	wm.mutex.Lock()
	current, exists := wm.connections[id]
	if exists && current == sp {
		delete(wm.connections, id)
	}
	wm.mutex.Unlock()

	sp.mu.Lock()
	_ = sp.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(100*time.Millisecond))
	sp.mu.Unlock()
	sp.conn.Close()
	log.Info().Str("spectator", id).Msg("spectator disconnected")
}

// handleMessages drains the connection; inbound frames are ignored.
func (wm *WebSocketManager) handleMessages(id string, sp *spectator) {
	sp.conn.SetReadLimit(512)
	for {
		if _, _, err := sp.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("spectator", id).Msg("spectator read failed")
			}
			wm.remove(id, sp)
			return
		}
	}
}
