package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// CertificateRoutingKey — ключ маршрутизации событий о выдаче сертификата.
const CertificateRoutingKey = "certificate.issued"

// CertificateQueue — очередь писем о выданных сертификатах.
const CertificateQueue = "notifications.certificates"

// GetNotificationQueues возвращает очереди, которые обслуживает notification-sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: CertificateQueue, RoutingKey: CertificateRoutingKey},
	}
}
