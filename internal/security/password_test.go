package security_test

import (
	"strings"
	"testing"

	"volunteer-match-server/internal/security"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := security.HashPassword("StrongPass123!")

	assert.NoError(t, err)
	assert.NotEqual(t, "StrongPass123!", hash)
	assert.True(t, security.CheckPassword("StrongPass123!", hash))
}

// одинаковые пароли дают разные хэши из-за соли
func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := security.HashPassword("StrongPass123!")
	assert.NoError(t, err)

	second, err := security.HashPassword("StrongPass123!")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, security.CheckPassword("StrongPass123!", first))
	assert.True(t, security.CheckPassword("StrongPass123!", second))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := security.HashPassword("StrongPass123!")
	assert.NoError(t, err)

	assert.False(t, security.CheckPassword("WrongPass123!", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, security.CheckPassword("StrongPass123!", "не bcrypt вовсе"))
	assert.False(t, security.CheckPassword("StrongPass123!", ""))
}

func TestHashPassword_TooLong(t *testing.T) {
	password := strings.Repeat("a", 73)

	hash, err := security.HashPassword(password)

	assert.ErrorIs(t, err, security.ErrPasswordTooLong)
	assert.Empty(t, hash)
}

func TestHashPassword_ExactlyMaxLength(t *testing.T) {
	password := strings.Repeat("a", 72)

	hash, err := security.HashPassword(password)

	assert.NoError(t, err)
	assert.True(t, security.CheckPassword(password, hash))
}

// cost = 0 трактуется как bcrypt.DefaultCost
func TestHashPasswordWithCost_ZeroCost(t *testing.T) {
	hash, err := security.HashPasswordWithCost("StrongPass123!", 0)
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

// хэши со старым cost продолжают проверяться
func TestCheckPassword_OldCostStillValid(t *testing.T) {
	hash, err := security.HashPasswordWithCost("StrongPass123!", bcrypt.MinCost)
	assert.NoError(t, err)

	assert.True(t, security.CheckPassword("StrongPass123!", hash))
}
