// Package validate настраивает go-playground/validator с доменными правилами
// платформы: формат имени пользователя, сложность пароля, принятие условий.
package validate

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// New возвращает валидатор с зарегистрированными правилами:
//
//	username_format     — 3-30 символов, латиница, цифры, подчёркивание
//	password_complexity — минимум 8 символов, верхний и нижний регистр, цифра
//	terms_accepted      — булево поле должно быть true
func New() *validator.Validate {
	v := validator.New()
	// регистрация не возвращает ошибку при непустом имени тега
	_ = v.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password_complexity", func(fl validator.FieldLevel) bool {
		return PasswordOK(fl.Field().String())
	})
	_ = v.RegisterValidation("terms_accepted", func(fl validator.FieldLevel) bool {
		return fl.Field().Bool()
	})
	return v
}

// PasswordOK проверяет сложность пароля: не короче 8 символов,
// есть символ в верхнем регистре, в нижнем регистре и цифра.
func PasswordOK(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
