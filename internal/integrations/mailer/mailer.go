package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// BookingLine одна услуга в подтверждении мульти-сервисной записи
type BookingLine struct {
	ServiceName       string
	StartTime         string
	DurationMinutes   int
	PriceCents        int64
	CancellationToken string
}

// Confirmation данные письма-подтверждения для всей записи целиком
type Confirmation struct {
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	Lines         []BookingLine
}

// TotalPriceCents суммарная стоимость записи
func (c Confirmation) TotalPriceCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.PriceCents
	}
	return total
}

// TotalDurationMinutes суммарная длительность записи
func (c Confirmation) TotalDurationMinutes() int {
	var total int
	for _, l := range c.Lines {
		total += l.DurationMinutes
	}
	return total
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Mailer отправляет подтверждения бронирований через Resend.
// Отправка fire-and-forget: ошибки логируются и не возвращаются,
// неудачная доставка письма не должна валить создание записи.
type Mailer struct {
	client  *resend.Client
	from    string
	baseURL string
	log     Logger
}

// New создает mailer. from в формате "Salon <noreply@example.com>",
// baseURL используется для ссылок самостоятельной отмены.
// Пустой apiKey отключает отправку, вызовы становятся no-op.
func New(apiKey, from, baseURL string, log Logger) *Mailer {
	m := &Mailer{
		from:    from,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
	if apiKey != "" {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

// SendBookingConfirmation отправляет одно письмо-подтверждение на всю
// мульти-сервисную запись. Ошибки проглатываются.
func (m *Mailer) SendBookingConfirmation(c Confirmation) {
	if m.client == nil {
		m.log.Info("Mailer: disabled, skipping confirmation for %s", c.CustomerEmail)
		return
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{c.CustomerEmail},
		Subject: fmt.Sprintf("Booking confirmed for %s", c.Date.Format("January 2, 2006")),
		Html:    m.buildConfirmationHTML(c),
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		m.log.Warn("Mailer: failed to send confirmation to %s: %v", c.CustomerEmail, err)
		return
	}
	m.log.Info("Mailer: confirmation sent to %s (id=%s)", c.CustomerEmail, sent.Id)
}

func (m *Mailer) cancelURL(token string) string {
	return m.baseURL + "/cancel/" + token
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("€%.2f", float64(cents)/100)
}

func (m *Mailer) buildConfirmationHTML(c Confirmation) string {
	var b strings.Builder

	b.WriteString("<html><body style=\"font-family:Helvetica,Arial,sans-serif;color:#1a1a1a;\">")
	fmt.Fprintf(&b, "<h2>Hello, %s!</h2>", c.CustomerName)
	b.WriteString("<p>Your appointment has been confirmed. We look forward to seeing you!</p>")
	fmt.Fprintf(&b, "<p><strong>%s</strong></p>", c.Date.Format("Monday, January 2, 2006"))

	b.WriteString("<table cellpadding=\"6\" style=\"border-collapse:collapse;\">")
	for _, line := range c.Lines {
		fmt.Fprintf(&b,
			"<tr><td>%s</td><td>%s</td><td>%d min</td><td>%s</td><td><a href=\"%s\">Cancel</a></td></tr>",
			line.ServiceName, line.StartTime, line.DurationMinutes,
			formatPrice(line.PriceCents), m.cancelURL(line.CancellationToken))
	}
	b.WriteString("</table>")

	fmt.Fprintf(&b, "<p>Total: <strong>%s</strong> (%d min)</p>",
		formatPrice(c.TotalPriceCents()), c.TotalDurationMinutes())
	fmt.Fprintf(&b, "<p style=\"color:#888;font-size:12px;\">Cancellations are possible up to %d hours before the appointment.</p>",
		domain.MinCancellationNoticeHours)
	b.WriteString("</body></html>")

	return b.String()
}
