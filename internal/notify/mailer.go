package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/config"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers HTML mail over SMTP.
type Mailer struct {
	cfg  config.SMTPConfig
	send SendFunc
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport.
func (m *Mailer) WithSender(send SendFunc) *Mailer {
	m.send = send
	return m
}

type orderLine struct {
	Name     string
	Quantity int
	Subtotal string
}

type orderConfirmedData struct {
	FirstName   string
	OrderNumber string
	Items       []orderLine
	Subtotal    string
	Tax         string
	Shipping    string
	Total       string
}

type passwordResetData struct {
	FirstName string
	Link      string
	ExpiresIn string
}

func (m *Mailer) OrderConfirmed(ctx context.Context, user domain.User, order domain.Order) error {
	data := orderConfirmedData{
		FirstName:   user.FirstName,
		OrderNumber: order.OrderNumber,
		Subtotal:    order.Subtotal.String(),
		Tax:         order.Tax.String(),
		Shipping:    order.Shipping.String(),
		Total:       order.Total.String(),
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, orderLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal.String(),
		})
	}

	body, err := render("order_confirmed.html", data)
	if err != nil {
		return err
	}

	return m.deliver(ctx, user.Email, "Order confirmation "+order.OrderNumber, body)
}

func (m *Mailer) PasswordReset(ctx context.Context, user domain.User, link string, ttl time.Duration) error {
	body, err := render("password_reset.html", passwordResetData{
		FirstName: user.FirstName,
		Link:      link,
		ExpiresIn: humanize(ttl),
	})
	if err != nil {
		return err
	}

	return m.deliver(ctx, user.Email, "Password reset", body)
}

func (m *Mailer) deliver(ctx context.Context, to, subject string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{to}, message(m.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

func message(from, to, subject string, body []byte) []byte {
	var msg bytes.Buffer
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)
	return msg.Bytes()
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("templates.ExecuteTemplate[%s]: %w", name, err)
	}
	return buf.Bytes(), nil
}

func humanize(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
