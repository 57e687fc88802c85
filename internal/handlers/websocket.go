package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	"github.com/CLDWare/aanwezigheid/pkg/logger"

	"github.com/gorilla/websocket"
)

const liveWriteTimeout = 5 * time.Second

// rosterUpdate is pushed to every teacher watching a lesson after its attendance changed
type rosterUpdate struct {
	Type       string                   `json:"type"`
	LessonID   uint                     `json:"lesson_id"`
	EntryState string                   `json:"entry_state"`
	Roster     []attendance.RosterEntry `json:"roster"`
}

type liveConn struct {
	ws *websocket.Conn
	mu sync.Mutex // gorilla allows one concurrent writer
}

func (c *liveConn) send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return c.ws.WriteJSON(msg)
}

// WebsocketHandler serves the live roster of a lesson over a websocket
type WebsocketHandler struct {
	config  *config.Config
	service *attendance.Service

	mu          sync.RWMutex
	connections map[uint]map[*liveConn]bool // lesson id -> watchers
}

func NewWebsocketHandler(cfg *config.Config, service *attendance.Service) *WebsocketHandler {
	return &WebsocketHandler{
		config:      cfg,
		service:     service,
		connections: make(map[uint]map[*liveConn]bool),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *WebsocketHandler) add(lessonID uint, conn *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[lessonID] == nil {
		h.connections[lessonID] = make(map[*liveConn]bool)
	}
	h.connections[lessonID][conn] = true
}

func (h *WebsocketHandler) remove(lessonID uint, conn *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections[lessonID], conn)
	if len(h.connections[lessonID]) == 0 {
		delete(h.connections, lessonID)
	}
}

func (h *WebsocketHandler) watchers(lessonID uint) []*liveConn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*liveConn, 0, len(h.connections[lessonID]))
	for conn := range h.connections[lessonID] {
		conns = append(conns, conn)
	}
	return conns
}

func (h *WebsocketHandler) update(ctx context.Context, lessonID uint) (rosterUpdate, error) {
	lesson, err := h.service.Lesson(ctx, lessonID)
	if err != nil {
		return rosterUpdate{}, err
	}
	roster, err := h.service.Roster(ctx, lessonID)
	if err != nil {
		return rosterUpdate{}, err
	}
	return rosterUpdate{
		Type:       "roster",
		LessonID:   lessonID,
		EntryState: string(lesson.EntryState),
		Roster:     roster,
	}, nil
}

// Notify sends the current roster of a lesson to everyone watching it
func (h *WebsocketHandler) Notify(ctx context.Context, lessonID uint) {
	conns := h.watchers(lessonID)
	if len(conns) == 0 {
		return
	}

	msg, err := h.update(ctx, lessonID)
	if err != nil {
		logger.Err("live roster:", err)
		return
	}
	for _, conn := range conns {
		if err := conn.send(msg); err != nil {
			logger.Warn("live roster: dropping watcher of lesson", lessonID, err)
			conn.ws.Close()
			h.remove(lessonID, conn)
		}
	}
}

// GetLive upgrades to a websocket and keeps pushing the roster of the lesson until the client leaves
func (h *WebsocketHandler) GetLive(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	msg, err := h.update(r.Context(), lessonID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Err(err)
		return
	}
	conn := &liveConn{ws: ws}
	h.add(lessonID, conn)
	defer func() {
		h.remove(lessonID, conn)
		ws.Close()
	}()

	if err := conn.send(msg); err != nil {
		logger.Warn("live roster: initial write failed:", err)
		return
	}

	// the feed is one way, reading only notices the client closing
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("live roster read:", err)
			}
			return
		}
	}
}
