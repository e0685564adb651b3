package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/Dosada05/ticket-tournament/config"
)

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

var _ Notifier = (*EmailService)(nil)

// Notify отправляет одно HTML-письмо. Контекст проверяется только до соединения:
// net/smtp не поддерживает отмену.
func (s *EmailService) Notify(ctx context.Context, email, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.SendEmail([]string{email}, subject, body)
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	tlsconfig := &tls.Config{ServerName: s.cfg.SMTPHost}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Прямое TLS-соединение (обычно порт 465)
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("ошибка TLS соединения: %w", err)
		}
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
	} else {
		// STARTTLS (обычно порт 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("ошибка соединения SMTP: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("ошибка команды STARTTLS: %w", err)
		}
	}
	defer client.Quit()

	if s.cfg.SMTPUser != "" {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("ошибка RCPT TO: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("ошибка записи сообщения: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия DATA: %w", err)
	}
	return nil
}

var (
	ticketEmailTemplate = template.Must(template.New("ticket").Parse(`<h2>Your ticket for {{.TournamentName}}</h2>
<p>Hi {{.PlayerName}},</p>
<p>Ticket number: <b>{{.TicketNumber}}</b><br>Access code: <b>{{.AccessCode}}</b></p>
<p>Your teams:</p>
<ul>{{range .Teams}}<li>{{.}}</li>{{end}}</ul>
<p>Good luck!</p>`))

	winnerEmailTemplate = template.Must(template.New("winner").Parse(`<h2>Congratulations, {{.PlayerName}}!</h2>
<p>Your ticket <b>{{.TicketNumber}}</b> won a prize in {{.TournamentName}} with {{.TotalPoints}} points.</p>
<p>Prize: <b>{{.Payout}}</b></p>`))
)

type TicketEmailData struct {
	PlayerName     string
	TournamentName string
	TicketNumber   string
	AccessCode     string
	Teams          []string
}

type WinnerEmailData struct {
	PlayerName     string
	TournamentName string
	TicketNumber   string
	TotalPoints    float64
	Payout         string
}

func RenderTicketEmail(data TicketEmailData) (string, error) {
	return renderTemplate(ticketEmailTemplate, data)
}

func RenderWinnerEmail(data WinnerEmailData) (string, error) {
	return renderTemplate(winnerEmailTemplate, data)
}

func renderTemplate(t *template.Template, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона %s: %w", t.Name(), err)
	}
	return body.String(), nil
}
