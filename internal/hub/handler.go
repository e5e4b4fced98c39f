package hub

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Хаб стоит за обратным прокси, происхождение проверяется там
	CheckOrigin: func(r *http.Request) bool { return true },
}

// broadcastRequest тело POST /broadcast
type broadcastRequest struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// Handler HTTP обвязка хаба
type Handler struct {
	hub    *Hub
	logger Logger
}

// NewHandler создает новый обработчик хаба
func NewHandler(h *Hub, logger Logger) *Handler {
	return &Handler{hub: h, logger: logger}
}

// Router собирает маршруты хаба
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", h.serveWS).Methods(http.MethodGet)
	router.HandleFunc("/broadcast", h.handleBroadcast).Methods(http.MethodPost)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/stats", h.handleStats).Methods(http.MethodGet)
	return router
}

// serveWS апгрейдит соединение и регистрирует подписчика
func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Hub: upgrade failed: %v", err)
		return
	}

	c := &client{hub: h.hub, conn: conn, send: make(chan []byte, 16)}
	h.hub.register <- c

	// Приветственное событие подтверждает подписку
	welcome, _ := json.Marshal(broadcastRequest{
		Event: "connected",
		Data:  map[string]interface{}{"clients": h.hub.Snapshot().Clients},
	})
	c.send <- welcome

	go c.writePump()
	go c.readPump()
}

// handleBroadcast принимает событие и рассылает его подписчикам
func (h *Handler) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Event == "" {
		http.Error(w, `{"error":"invalid broadcast payload"}`, http.StatusBadRequest)
		return
	}

	message, err := json.Marshal(req)
	if err != nil {
		http.Error(w, `{"error":"failed to encode event"}`, http.StatusInternalServerError)
		return
	}

	h.hub.Broadcast(message)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "event": req.Event})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.hub.Snapshot())
}
