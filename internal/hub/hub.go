package hub

import (
	"sync"
	"sync/atomic"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Hub рассылает события всем подключенным websocket клиентам
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	stop       chan struct{}
	stopOnce   sync.Once

	started        time.Time
	clientCount    atomic.Int64
	messagesSent   atomic.Int64
	totalConnected atomic.Int64

	logger Logger
}

// New создает новый хаб
func New(logger Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		started:    time.Now(),
		logger:     logger,
	}
}

// Run обслуживает регистрацию клиентов и рассылку сообщений.
// Запускается в отдельной горутине.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.clientCount.Store(int64(len(h.clients)))
			h.totalConnected.Add(1)
			h.logger.Info("Hub: client connected, %d online", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.clientCount.Store(int64(len(h.clients)))
				h.logger.Info("Hub: client disconnected, %d online", len(h.clients))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Медленный клиент не должен тормозить остальных
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.clientCount.Store(int64(len(h.clients)))
			h.messagesSent.Add(1)

		case <-h.stop:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientCount.Store(0)
			return
		}
	}
}

// Broadcast отправляет сообщение всем подключенным клиентам
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.stop:
	}
}

// Stop останавливает хаб и отключает всех клиентов. Повторные вызовы безопасны.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Stats текущее состояние хаба
type Stats struct {
	Clients          int64  `json:"clients"`
	TotalConnections int64  `json:"totalConnections"`
	MessagesSent     int64  `json:"messagesSent"`
	Uptime           string `json:"uptime"`
}

// Snapshot возвращает статистику хаба
func (h *Hub) Snapshot() Stats {
	return Stats{
		Clients:          h.clientCount.Load(),
		TotalConnections: h.totalConnected.Load(),
		MessagesSent:     h.messagesSent.Load(),
		Uptime:           time.Since(h.started).Round(time.Second).String(),
	}
}
