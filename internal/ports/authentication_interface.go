package ports

import (
	"context"

	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/security"
)

type AuthenticationService interface {
	Login(ctx context.Context, email, password string) (*model.TokensPair, error)
	RefreshSession(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	CurrentUser(ctx context.Context) (*model.User, error)
}

type JWTServiceInterface interface {
	IssueAccessToken(userUUID string) (string, error)
	IssueRefreshToken(userUUID string) (string, error)
	GenerateTokensPair(userUUID string) (*model.TokensPair, error)
	VerifyToken(tokenString string, expectedType security.TokenType) (*security.Claims, error)
}
