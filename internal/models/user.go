// Package models содержит доменные структуры платформы обучения:
// пользователей, курсы, записи на курсы и сертификаты.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
// Хэш пароля никогда не сериализуется в JSON-ответы.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`  // Имя пользователя (уникальное)
	PasswordHash string  `json:"-"`         // Хэш пароля в форме {hashHex}.{saltHex}
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`     // Электронная почта (уникальная)
	Phone        *string `json:"phone"`     // Телефон, может отсутствовать
}
