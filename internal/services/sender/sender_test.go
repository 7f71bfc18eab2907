package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taallam/learning-platform/internal/lib/smtp"
	"github.com/taallam/learning-platform/internal/models"
)

// MockTransport реализует интерфейс smtp.TransportInterface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

// MockClient реализует интерфейс smtp.Client
type MockClient struct {
	mock.Mock
	written strings.Builder
}

func (m *MockClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return &builderWriteCloser{b: &m.written}, nil
}

func (m *MockClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type builderWriteCloser struct {
	b *strings.Builder
}

func (w *builderWriteCloser) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

func (w *builderWriteCloser) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.CertificateIssuedEvent{
		Email:             "student@example.com",
		FirstName:         "Ada",
		CourseTitle:       "Web Development Basics",
		CertificateNumber: "3-a1b2c3d4",
		IssueDate:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func TestSendCertificateIssued(t *testing.T) {
	t.Run("успешная отправка письма", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockClient)

		transport.On("GetSMTPUser").Return("noreply@platform.example")
		transport.On("Connect").Return(client, nil)
		client.On("Mail", "noreply@platform.example").Return(nil)
		client.On("Rcpt", "student@example.com").Return(nil)
		client.On("Data").Return(nil, nil)
		client.On("Quit").Return(nil)

		svc := New(transport, testLogger())

		err := svc.SendCertificateIssued(eventBody(t))
		require.NoError(t, err)

		sent := client.written.String()
		assert.Contains(t, sent, "To: student@example.com")
		assert.Contains(t, sent, "Hello, Ada!")
		assert.Contains(t, sent, "Web Development Basics")
		assert.Contains(t, sent, "3-a1b2c3d4")
		assert.Contains(t, sent, "2026-08-01")

		client.AssertExpectations(t)
	})

	t.Run("некорректное тело события", func(t *testing.T) {
		transport := new(MockTransport)

		svc := New(transport, testLogger())

		err := svc.SendCertificateIssued([]byte("not a json"))
		require.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("ошибка подключения к SMTP", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("GetSMTPUser").Return("noreply@platform.example")
		transport.On("Connect").Return(nil, errors.New("connection refused"))

		svc := New(transport, testLogger())

		err := svc.SendCertificateIssued(eventBody(t))
		require.Error(t, err)
	})

	t.Run("ошибка получателя", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockClient)

		transport.On("GetSMTPUser").Return("noreply@platform.example")
		transport.On("Connect").Return(client, nil)
		client.On("Mail", "noreply@platform.example").Return(nil)
		client.On("Rcpt", "student@example.com").Return(errors.New("mailbox unavailable"))
		client.On("Quit").Return(nil)

		svc := New(transport, testLogger())

		err := svc.SendCertificateIssued(eventBody(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to set recipient")
	})
}
