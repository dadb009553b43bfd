package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Madhuram99/ATS-SYSTEM/internal/apperr"
)

// Message is a single rendered email ready for delivery.
type Message struct {
	From    string   `json:"from,omitempty"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// Sender delivers rendered messages. Implementations wrap a real transport;
// tests substitute a fake.
type Sender interface {
	Send(msg Message) error
}

// SMTPConfig holds the SMTP transport settings.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// SMTPSender sends mail over plain SMTP with optional PLAIN auth.
type SMTPSender struct {
	addr string
	host string
	auth smtp.Auth
	from string
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	s := &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		host: cfg.Host,
		from: cfg.From,
	}
	if cfg.Username != "" && cfg.Password != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s
}

func (s *SMTPSender) Send(msg Message) error {
	from := msg.From
	if from == "" {
		from = s.from
	}
	data := buildMessageData(from, msg)
	if err := smtp.SendMail(s.addr, s.auth, from, msg.To, []byte(data)); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrDeliveryFailed, err)
	}
	return nil
}

func buildMessageData(from string, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String()
}
