// Package realtime содержит переподключающегося подписчика на событийный
// поток realtime-хаба. Используется операторскими дашбордами для получения
// push-событий (booking_created, blocked_time_deleted и т.д.).
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Status состояние подключения клиента
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusReconnecting Status = "reconnecting"
)

const (
	// DefaultKeepaliveInterval интервал отправки keepalive-сообщения "ping"
	DefaultKeepaliveInterval = 25 * time.Second

	backoffBase = time.Second
	backoffMax  = 30 * time.Second
)

// Event структурированное событие из потока хаба
type Event struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Options параметры клиента
type Options struct {
	// URL адрес событийного потока (ws://host/ws)
	URL string
	// MaxRetries максимум попыток переподключения (0 = без ограничения)
	MaxRetries int
	// OnEvent вызывается для каждого разобранного события
	OnEvent func(Event)
	// OnStatusChange вызывается при смене состояния подключения
	OnStatusChange func(Status)
	// KeepaliveInterval интервал keepalive (0 = DefaultKeepaliveInterval)
	KeepaliveInterval time.Duration
	// Logger опциональный логгер
	Logger Logger
}

// Client переподключающийся websocket-подписчик.
//
// Машина состояний: disconnected -> connecting -> connected ->
// (reconnecting -> connecting)* -> disconnected. Disconnect отменяет
// ожидающий backoff-таймер и подавляет дальнейшие переподключения.
type Client struct {
	url            string
	maxRetries     int
	onEvent        func(Event)
	onStatusChange func(Status)
	keepalive      time.Duration
	logger         Logger

	mu      sync.Mutex
	status  Status
	retries int
	conn    *websocket.Conn
	cancel  context.CancelFunc

	writeMu sync.Mutex
}

// NewClient создает клиента. Подключение начинается только после Connect.
func NewClient(opts Options) *Client {
	keepalive := opts.KeepaliveInterval
	if keepalive <= 0 {
		keepalive = DefaultKeepaliveInterval
	}
	return &Client{
		url:            opts.URL,
		maxRetries:     opts.MaxRetries,
		onEvent:        opts.OnEvent,
		onStatusChange: opts.OnStatusChange,
		keepalive:      keepalive,
		logger:         opts.Logger,
		status:         StatusDisconnected,
	}
}

// Backoff возвращает задержку перед попыткой переподключения номер retry:
// 1s, 2s, 4s, 8s... с потолком 30s. Чистая функция от номера попытки.
func Backoff(retry int) time.Duration {
	if retry < 0 {
		retry = 0
	}
	if retry > 30 {
		return backoffMax
	}
	d := backoffBase << uint(retry)
	if d > backoffMax || d <= 0 {
		return backoffMax
	}
	return d
}

// Status возвращает текущее состояние подключения
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Connect запускает цикл подключения. Повторный вызов при активном
// подключении игнорируется. После Disconnect можно вызывать снова.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.status == StatusConnecting || c.status == StatusConnected || c.status == StatusReconnecting {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.retries = 0
	c.mu.Unlock()

	go c.run(ctx)
}

// Disconnect разрывает соединение и подавляет переподключения.
// Имеет приоритет над любым ожидающим backoff-таймером.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

func (c *Client) run(ctx context.Context) {
	for {
		c.setStatus(StatusConnecting)

		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err == nil {
			c.mu.Lock()
			c.conn = conn
			c.retries = 0
			c.mu.Unlock()
			c.setStatus(StatusConnected)

			c.readLoop(ctx, conn)

			c.mu.Lock()
			c.conn = nil
			c.mu.Unlock()
		} else if c.logger != nil {
			c.logger.Warn("realtime: dial %s failed: %v", c.url, err)
		}

		if ctx.Err() != nil {
			c.setStatus(StatusDisconnected)
			return
		}

		c.mu.Lock()
		if c.maxRetries != 0 && c.retries >= c.maxRetries {
			c.mu.Unlock()
			c.setStatus(StatusDisconnected)
			return
		}
		delay := Backoff(c.retries)
		c.retries++
		c.mu.Unlock()

		c.setStatus(StatusReconnecting)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			c.setStatus(StatusDisconnected)
			return
		}
	}
}

// readLoop читает кадры до ошибки соединения. Некорректные payload-ы
// молча отбрасываются, а не поднимаются как ошибки.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go c.keepaliveLoop(ctx, conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		if ev.Event == "" {
			continue
		}
		if c.onEvent != nil {
			c.onEvent(ev)
		}
	}
}

func (c *Client) keepaliveLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(c.keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			err := conn.WriteMessage(websocket.TextMessage, []byte("ping"))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	if c.status == s {
		c.mu.Unlock()
		return
	}
	c.status = s
	c.mu.Unlock()

	if c.onStatusChange != nil {
		c.onStatusChange(s)
	}
}
