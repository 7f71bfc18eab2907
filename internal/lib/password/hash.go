// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Hash создает scrypt-хеш пароля со случайной солью для безопасного хранения.
// Compare сравнивает сохранённый хеш с введённым паролем за константное время.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/taallam/learning-platform/internal/lib/errs"
)

const (
	saltLen = 16
	keyLen  = 64

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// Hash принимает пароль пользователя и возвращает строку вида {hashHex}.{saltHex}.
//
// Используется для безопасного хранения паролей в базе данных.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// Compare пересчитывает хеш введённого пароля с сохранённой солью
// и сравнивает результат за константное время.
//
// Возвращает nil при совпадении, errs.ErrInvalidCredentials при несовпадении
// и errs.ErrMalformedHash, если сохранённая запись повреждена.
func Compare(stored, supplied string) error {
	const op = "password.Compare"
	hashHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return fmt.Errorf("%s: %w", op, errs.ErrMalformedHash)
	}
	storedKey, err := hex.DecodeString(hashHex)
	if err != nil {
		return fmt.Errorf("%s: %w", op, errs.ErrMalformedHash)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return fmt.Errorf("%s: %w", op, errs.ErrMalformedHash)
	}
	key, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, len(storedKey))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if subtle.ConstantTimeCompare(storedKey, key) != 1 {
		return fmt.Errorf("%s: %w", op, errs.ErrInvalidCredentials)
	}
	return nil
}
