package realtimehub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Client клиент realtime-хаба. Выполняет fire-and-forget push доменных
// событий на endpoint /broadcast. Все ошибки логируются и проглатываются:
// доставка событий best-effort и никогда не влияет на вызвавшую операцию.
type Client struct {
	broadcastURL string
	httpClient   *http.Client
	log          Logger
	onFailure    func()
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// NewClient создает новый экземпляр клиента хаба.
// onFailure (опционально) вызывается при каждой неудачной отправке,
// используется для инкремента метрики.
func NewClient(broadcastURL string, timeout time.Duration, log Logger, onFailure func()) *Client {
	return &Client{
		broadcastURL: broadcastURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:       log,
		onFailure: onFailure,
	}
}

type broadcastPayload struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// Broadcast отправляет событие всем подключенным подписчикам хаба.
// Никогда не возвращает ошибку вызывающей стороне.
func (c *Client) Broadcast(ctx context.Context, event string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}

	body, err := json.Marshal(broadcastPayload{Event: event, Data: data})
	if err != nil {
		c.fail("Broadcast: failed to marshal event '%s': %v", event, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.broadcastURL, bytes.NewReader(body))
	if err != nil {
		c.fail("Broadcast: failed to create request for '%s': %v", event, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.fail("Broadcast: failed to send '%s': %v", event, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.fail("Broadcast: hub returned status %d for '%s': %s", resp.StatusCode, event, string(respBody))
	}
}

func (c *Client) fail(format string, v ...interface{}) {
	c.log.Warn(format, v...)
	if c.onFailure != nil {
		c.onFailure()
	}
}
