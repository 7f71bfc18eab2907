package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/taallam/learning-platform/internal/models"
)

// Notifier публикует доменные события платформы в exchange уведомлений.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает новый Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishCertificateIssued публикует событие о выдаче сертификата.
func (n *Notifier) PublishCertificateIssued(event models.CertificateIssuedEvent) error {
	return PublishMessage(n.ch, Exchange, CertificateRoutingKey, event)
}
