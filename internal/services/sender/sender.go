// Package sender отправляет почтовые уведомления о выданных сертификатах.
// Сообщения приходят из RabbitMQ от движка записей на курсы.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taallam/learning-platform/internal/lib/sl"
	"github.com/taallam/learning-platform/internal/lib/smtp"
	"github.com/taallam/learning-platform/internal/models"
)

// Service потребляет события certificate.issued и шлёт письма.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendCertificateIssued обрабатывает тело события certificate.issued:
// отправляет владельцу письмо с номером сертификата.
func (s *Service) SendCertificateIssued(body []byte) error {
	var event models.CertificateIssuedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{event.Email}
	subject := "Your course completion certificate"
	bodyText := fmt.Sprintf(
		"Hello, %s!\n\nCongratulations on completing the course \"%s\".\n\n"+
			"Your certificate number is %s, issued on %s.\n"+
			"Anyone can verify it at /api/certificates/verify/%s.",
		event.FirstName, event.CourseTitle, event.CertificateNumber,
		event.IssueDate.Format("2006-01-02"), event.CertificateNumber)

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			s.log.Error("failed to close SMTP session", sl.Err(quitErr))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	s.log.Info("certificate email sent", slog.String("to", to[0]))
	return nil
}
