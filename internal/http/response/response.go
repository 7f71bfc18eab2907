// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успех с данными пользователя,
// ошибки с привязкой к полю и сообщения валидации в едином формате.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Success — исход запроса. Поле Message — текст (опционально).
// Поле Field указывает поле запроса, вызвавшее конфликт уникальности.
// Поле Errors содержит сообщения валидации по полям.
// Поле User — данные пользователя без хэша пароля (опционально).
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Field   string              `json:"field,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	User    any                 `json:"user,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid request body"`
}

// OKUser возвращает успешный Response с данными пользователя.
func OKUser(user any) Response {
	return Response{
		Success: true,
		User:    user,
	}
}

// OKMessage возвращает успешный Response с текстовым сообщением.
func OKMessage(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// OKUserMessage возвращает успешный Response с пользователем и сообщением.
func OKUserMessage(user any, msg string) Response {
	return Response{
		Success: true,
		Message: msg,
		User:    user,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// FieldConflict возвращает Response с ошибкой, привязанной к полю запроса,
// например при занятом username или email.
func FieldConflict(msg, field string) Response {
	return Response{
		Success: false,
		Message: msg,
		Field:   field,
	}
}

// ValidationError формирует Response с сообщениями валидации по полям.
func ValidationError(errs validator.ValidationErrors) Response {
	fieldErrs := make(map[string][]string)

	for _, err := range errs {
		field := err.Field()
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = fmt.Sprintf("field %s is a required field", field)
		case "email":
			msg = fmt.Sprintf("field %s must be a valid email address", field)
		case "min":
			msg = fmt.Sprintf("field %s is too short", field)
		case "max":
			msg = fmt.Sprintf("field %s is too long", field)
		case "gte":
			msg = fmt.Sprintf("field %s must be at least %s", field, err.Param())
		case "lte":
			msg = fmt.Sprintf("field %s must be at most %s", field, err.Param())
		case "eqfield":
			msg = fmt.Sprintf("field %s must match %s", field, err.Param())
		case "username_format":
			msg = fmt.Sprintf("field %s must be 3-30 characters: letters, digits or underscore", field)
		case "password_complexity":
			msg = fmt.Sprintf("field %s must be at least 8 characters with upper, lower and digit", field)
		case "terms_accepted":
			msg = fmt.Sprintf("field %s must be accepted", field)
		default:
			msg = fmt.Sprintf("field %s is not valid", field)
		}
		fieldErrs[field] = append(fieldErrs[field], msg)
	}
	return Response{
		Success: false,
		Errors:  fieldErrs,
	}
}
