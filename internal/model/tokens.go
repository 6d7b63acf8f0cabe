package model

// TokensPair содержит пару access и refresh токенов.
// Оба токена — самодостаточные JWT, сервер их не хранит.
// swagger:model
type TokensPair struct {
	// Access токен (JWT, короткоживущий)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (JWT, используется только для получения новой пары)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}
