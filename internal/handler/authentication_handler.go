package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"volunteer-match-server/internal/model/requestresponse"
	"volunteer-match-server/internal/ports"
	"volunteer-match-server/internal/service"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
}

func NewAuthenticationHandler(
	authenticationService *service.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Получение пары access/refresh токенов по email и паролю. Неизвестный email и неверный пароль дают одинаковый ответ.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса" example({"email": "volunteer@example.com", "password": "Demo123!"})
// @Success 200 {object} requestresponse.LoginResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "неверный логин или пароль"):
			sendErrorResponse(w, 401, "неверный логин или пароль")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.LoginResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обновляет пару токенов (access и refresh) по действующему refresh токену. Токен самодостаточен, access токен не требуется.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RefreshTokenResponse "Новые access и refresh токены"
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "неверный JSON")
		return
	}

	if req.RefreshToken == "" {
		sendErrorResponse(w, 400, "refresh_token обязателен")
		return
	}

	tokensPair, err := h.AuthenticationService.RefreshSession(ctx, req.RefreshToken)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "невалидный токен"):
			sendErrorResponse(w, 401, "не удалось обновить токены")
		case strings.Contains(err.Error(), "ошибка генерации токенов"):
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		default:
			sendErrorResponse(w, 500, "неизвестная ошибка")
		}
		return
	}

	resp := requestresponse.RefreshTokenResponse{}
	resp.Response.AccessToken = tokensPair.AccessToken
	resp.Response.RefreshToken = tokensPair.RefreshToken

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetCurrentUser godoc
// @Summary Получение текущего пользователя
// @Description Возвращает UUID, email и роль пользователя, который авторизован в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := h.AuthenticationService.CurrentUser(ctx)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"):
			sendErrorResponse(w, 401, "не авторизован")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "неизвестная ошибка")
		}
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = user.UUID
	resp.Response.Email = user.Email
	resp.Response.Role = user.Role

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetCurrentUserHead godoc
// @Summary Получение текущего пользователя
// @Description Возвращает UUID, email и роль пользователя, который авторизован в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [head]
func (h *AuthenticationHandler) GetCurrentUserHead(w http.ResponseWriter, r *http.Request) {
	h.GetCurrentUser(w, r)
}
