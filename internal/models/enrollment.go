package models

import "time"

// Enrollment связывает пользователя с курсом и хранит состояние прохождения.
// Пара (UserID, CourseID) уникальна: не более одной записи на курс.
// При достижении прогресса 100 запись переходит в completed и получает
// ссылку на выданный сертификат.
type Enrollment struct {
	ID            int        `json:"id"`
	UserID        int        `json:"userId"`
	CourseID      int        `json:"courseId"`
	Progress      int        `json:"progress"` // 0..100
	Completed     bool       `json:"completed"`
	CertificateID *int       `json:"certificateId"`
	EnrolledAt    time.Time  `json:"enrolledAt"`
	CompletedAt   *time.Time `json:"completedAt"`
}

// EnrollmentWithCourse — запись на курс вместе с данными самого курса,
// отдаётся списком в GET /api/enrollments.
type EnrollmentWithCourse struct {
	Enrollment
	Course *Course `json:"course"`
}
