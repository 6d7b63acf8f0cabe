package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt учитывает только первые 72 байта пароля,
// более длинный ввод отклоняем явно
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("пароль длиннее 72 байт")

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, bcrypt.DefaultCost)
}

// HashPasswordWithCost хэширует пароль с заданным work factor.
// cost = 0 означает bcrypt.DefaultCost. Хэши, созданные со старым cost,
// продолжают проверяться через CheckPassword (cost зашит в сам хэш).
func HashPasswordWithCost(password string, cost int) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword сравнивает пароль с хэшем.
// Любая ошибка, включая повреждённый хэш, трактуется как несовпадение.
func CheckPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
