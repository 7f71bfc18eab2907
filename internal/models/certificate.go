package models

import "time"

// Certificate — неизменяемое свидетельство о завершении курса.
// Выдаётся ровно один раз на завершённую запись.
// Номер имеет форму {courseId}-{8 hex} и уникален.
type Certificate struct {
	ID                int       `json:"id"`
	UserID            int       `json:"userId"`
	CourseID          int       `json:"courseId"`
	CertificateNumber string    `json:"certificateNumber"`
	IssueDate         time.Time `json:"issueDate"`
}

// CertificateWithCourse — сертификат вместе с курсом,
// отдаётся списком в GET /api/certificates.
type CertificateWithCourse struct {
	Certificate
	Course *Course `json:"course"`
}

// CertificateDetails — сертификат с курсом и владельцем
// для страницы просмотра и публичной проверки.
// Пользователь сериализуется без хэша пароля.
type CertificateDetails struct {
	Certificate
	Course *Course `json:"course"`
	User   *User   `json:"user"`
}

// CertificateIssuedEvent публикуется в RabbitMQ после выдачи сертификата,
// потребляется сервисом отправки уведомлений.
type CertificateIssuedEvent struct {
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	CourseTitle       string    `json:"course_title"`
	CertificateNumber string    `json:"certificate_number"`
	IssueDate         time.Time `json:"issue_date"`
}
