package notify

import (
	"bufio"
	"context"
	"errors"
	"mime"
	"net"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"sportify-backend/internal/config"
	"sportify-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() (*models.User, *models.Tournament, *models.Registration) {
	player := &models.User{Name: "Priya", Email: "priya@example.com"}
	tournament := &models.Tournament{
		Name:      "Summer Smash",
		Sport:     "Badminton",
		Venue:     "City Arena",
		City:      "Pune",
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EntryFee:  250,
	}
	reg := &models.Registration{
		RegistrationType:  models.RegistrationIndividual,
		PaymentStatus:     models.PaymentPending,
		Verified:          false,
		VerificationNotes: "Aadhar photo is blurry",
		AmountPaid:        250,
		RazorpayPaymentID: "pay_123",
	}
	return player, tournament, reg
}

func TestRenderTemplates(t *testing.T) {
	m := NewMailer(&config.Config{})
	player, tournament, reg := sampleData()

	msgs := []Message{
		RegistrationConfirmation(player, tournament, reg, "http://app/registrations"),
		PaymentConfirmation(player, tournament, reg, "http://app/registrations"),
		VerificationUpdate(player, "Pune Sports Club", tournament, reg, "http://app/registrations"),
	}
	for _, msg := range msgs {
		t.Run(msg.Template, func(t *testing.T) {
			body, err := m.Render(msg.Template, msg.Data)
			require.NoError(t, err)
			assert.Contains(t, body, "Priya")
			assert.Contains(t, body, "Summer Smash")
			assert.Equal(t, []string{"priya@example.com"}, msg.To)
		})
	}

	body, err := m.Render(TemplateVerificationUpdate, msgs[2].Data)
	require.NoError(t, err)
	assert.Contains(t, body, "Pune Sports Club")
	assert.Contains(t, body, "Badminton")
	assert.Contains(t, body, "Aadhar photo is blurry")
	assert.Contains(t, msgs[2].Subject, "rejected")

	_, err = m.Render("missing_template", nil)
	assert.Error(t, err)
}

func TestMailerSend_Unconfigured(t *testing.T) {
	m := NewMailer(&config.Config{})
	player, tournament, reg := sampleData()

	err := m.Send(context.Background(), RegistrationConfirmation(player, tournament, reg, ""))
	assert.Error(t, err)
}

// fakeSMTP accepts one message and hands back the DATA section.
func fakeSMTP(t *testing.T) (host string, port int, data <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
		reply("220 fake ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 fake")
			case strings.HasPrefix(cmd, "DATA"):
				reply("354 go ahead")
				var msg strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					msg.WriteString(l)
				}
				out <- msg.String()
				reply("250 queued")
			case strings.HasPrefix(cmd, "QUIT"):
				reply("221 bye")
				return
			default:
				reply("250 ok")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, out
}

func TestMailerSend_TournamentNameCannotInjectHeaders(t *testing.T) {
	host, port, data := fakeSMTP(t)
	m := NewMailer(&config.Config{SMTPHost: host, SMTPPort: port, SMTPFrom: "Sportify <no-reply@sportify.local>"})

	player, tournament, reg := sampleData()
	tournament.Name = "Cup\r\nBcc: victim@evil.example"

	require.NoError(t, m.Send(context.Background(), RegistrationConfirmation(player, tournament, reg, "http://app/registrations")))

	var raw string
	select {
	case raw = <-data:
	case <-time.After(5 * time.Second):
		t.Fatal("no message reached the SMTP server")
	}

	parsed, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Empty(t, parsed.Header.Get("Bcc"))
	assert.Contains(t, parsed.Header.Get("Subject"), "Cup")
	assert.Equal(t, "priya@example.com", parsed.Header.Get("To"))
	for _, line := range strings.Split(raw, "\r\n") {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), "header line %q", line)
	}
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	raw := string(buildMessage("no-reply@sportify.local", Message{
		To:      []string{"a@example.com\nCc: b@example.com"},
		Subject: "Khel Mahotsav ₹500 entry",
	}, "<p>hi</p>"))

	parsed, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Empty(t, parsed.Header.Get("Cc"))

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Khel Mahotsav ₹500 entry", subject)
}

type recordingSender struct {
	mu    sync.Mutex
	sent  []Message
	fail  bool
	block chan struct{}
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.fail {
		return errors.New("smtp down")
	}
	return nil
}

func TestQueue_DeliversAndDrainsOnClose(t *testing.T) {
	sender := &recordingSender{fail: true}
	q := NewQueue(sender, 8)

	for i := 0; i < 5; i++ {
		q.Enqueue(Message{To: []string{"a@example.com"}, Template: TemplatePaymentConfirmation})
	}
	q.Close()

	assert.Len(t, sender.sent, 5)

	// enqueue after close is dropped, not a panic
	assert.NotPanics(t, func() { q.Enqueue(Message{Template: TemplatePaymentConfirmation}) })
	assert.NotPanics(t, q.Close)
}

func TestQueue_DropsWhenFull(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	q := NewQueue(sender, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			q.Enqueue(Message{Template: TemplateRegistrationConfirmation})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(sender.block)
	q.Close()
	assert.LessOrEqual(t, len(sender.sent), 2)
	assert.NotEmpty(t, sender.sent)
}
