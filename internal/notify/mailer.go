package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"sportify-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer sends HTML mail over SMTP. Templates are parsed on first use.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string

	once      sync.Once
	templates *template.Template
	parseErr  error
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

func (m *Mailer) loadTemplates() (*template.Template, error) {
	m.once.Do(func() {
		m.templates, m.parseErr = template.ParseFS(templateFS, "templates/*.html")
	})
	return m.templates, m.parseErr
}

// Render executes the named template (file name without extension).
func (m *Mailer) Render(name string, data any) (string, error) {
	t, err := m.loadTemplates()
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := t.ExecuteTemplate(&body, name+".html", data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return body.String(), nil
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.host == "" {
		return errors.New("SMTP host is not configured")
	}
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}

	body, err := m.Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	raw := buildMessage(m.from, msg, body)

	client, err := m.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if m.user != "" {
		if err := client.Auth(smtp.PlainAuth("", m.user, m.pass, m.host)); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}
	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("SMTP MAIL FROM failed: %w", err)
	}
	for _, addr := range msg.To {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("SMTP RCPT TO %s failed: %w", addr, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}
	return client.Quit()
}

// buildMessage assembles headers and body. Header values never carry line
// breaks, so tournament names cannot start new header lines.
func buildMessage(from string, msg Message, body string) []byte {
	return []byte("To: " + headerValue(msg.To[0]) + "\r\n" +
		"From: " + headerValue(from) + "\r\n" +
		"Subject: " + mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)) + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func headerValue(v string) string {
	return lineBreaks.Replace(v)
}

// dial connects with implicit TLS on 465 and STARTTLS everywhere else.
func (m *Mailer) dial(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	tlsConfig := &tls.Config{ServerName: m.host}
	dialer := &net.Dialer{Timeout: 15 * time.Second}

	if m.port == 465 {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("TLS connection failed: %w", err)
		}
		client, err := smtp.NewClient(conn, m.host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
		return client, nil
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("SMTP connection failed: %w", err)
	}
	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
	}
	return client, nil
}
