package security

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"volunteer-match-server/config"
	"volunteer-match-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// TokenType — закрытый набор типов токенов
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 720 * time.Hour
)

// ErrInvalidToken — единственная ошибка верификации токена.
// Причина отказа (просрочен, чужая подпись, не тот тип, мусор вместо JWT)
// вызывающему не раскрывается.
var ErrInvalidToken = errors.New("невалидный токен")

type Claims struct {
	UserUUID  string    `json:"user_uuid"`
	TokenType TokenType `json:"token_type"`
	// IsAdmin выставляется только middleware для административного токена
	// из конфигурации, в выданные JWT это поле не попадает
	IsAdmin bool `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService создаёт сервис токенов. Конфигурация читается один раз,
// отсутствие секрета или нечитаемый TTL — фатальная ошибка запуска.
func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	if cfg == nil || cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret_key не задан в конфигурации")
	}

	accessTTL := defaultAccessTokenTTL
	if cfg.AccessTokenTTL != "" {
		parsed, err := time.ParseDuration(cfg.AccessTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
		}
		accessTTL = parsed
	}

	refreshTTL := defaultRefreshTokenTTL
	if cfg.RefreshTokenTTL != "" {
		parsed, err := time.ParseDuration(cfg.RefreshTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга refresh_token_ttl: %w", err)
		}
		refreshTTL = parsed
	}

	return &JWTService{
		secretKey:       []byte(cfg.SecretKey),
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}, nil
}

func (service *JWTService) IssueAccessToken(userUUID string) (string, error) {
	return service.issueToken(userUUID, TokenTypeAccess, service.accessTokenTTL)
}

func (service *JWTService) IssueRefreshToken(userUUID string) (string, error) {
	return service.issueToken(userUUID, TokenTypeRefresh, service.refreshTokenTTL)
}

// GenerateTokensPair выдаёт пару access/refresh токенов для пользователя.
// Оба токена самодостаточны, на сервере ничего не сохраняется.
func (service *JWTService) GenerateTokensPair(userUUID string) (*model.TokensPair, error) {
	accessToken, err := service.IssueAccessToken(userUUID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.IssueRefreshToken(userUUID)
	if err != nil {
		return nil, err
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *JWTService) issueToken(userUUID string, tokenType TokenType, ttl time.Duration) (string, error) {
	claims := Claims{
		UserUUID:  userUUID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "volunteer-match-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(service.secretKey)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

// VerifyToken проверяет подпись, срок действия и тип токена.
// Любой отказ возвращает ErrInvalidToken, детали остаются в логе.
func (service *JWTService) VerifyToken(jwtTokenStr string, expectedType TokenType) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return service.secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		log.Printf("невалидный токен: %v", err)
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		log.Printf("невалидный токен: тип %q вместо %q", claims.TokenType, expectedType)
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func JWTMiddleware(jwtService *JWTService, adminToken string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, adminToken, next))
	}
}

func handleAuthentication(jwtService *JWTService, adminToken string, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		if adminToken != "" && token == adminToken {
			adminClaims := &Claims{
				UserUUID:  "admin",
				TokenType: TokenTypeAccess,
				IsAdmin:   true,
			}
			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, adminClaims))
			next.ServeHTTP(writer, req)
			return
		}

		claims, err := jwtService.VerifyToken(token, TokenTypeAccess)
		if err != nil {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
