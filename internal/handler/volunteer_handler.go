package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"volunteer-match-server/internal/model"
	"volunteer-match-server/internal/model/requestresponse"
	"volunteer-match-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

type VolunteerHandler struct {
	ports.VolunteerService
}

func NewVolunteerHandler(volunteerService ports.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteerService}
}

// CreateProfile godoc
// @Summary Создание профиля волонтёра
// @Description Создает профиль для текущего пользователя с ролью volunteer. У пользователя может быть только один профиль.
// @Tags Volunteers
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateVolunteerProfileRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VolunteerProfileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/volunteers [post]
// @Security BearerAuth
func (h *VolunteerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateVolunteerProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	profile := &model.VolunteerProfile{
		FullName: req.FullName,
		Bio:      req.Bio,
		Skills:   req.Skills,
		City:     req.City,
	}

	created, err := h.VolunteerService.CreateProfile(r.Context(), profile)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "имя волонтёра обязательно"):
			sendErrorResponse(w, 400, "bad request")
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "уже создан"):
			sendErrorResponse(w, 409, "профиль уже создан")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.VolunteerProfileResponse{Data: created}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetProfile godoc
// @Summary Получение профиля волонтёра
// @Description Возвращает профиль по UUID. Доступно всем авторизованным пользователям.
// @Tags Volunteers
// @Produce json
// @Param uuid path string true "UUID профиля"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VolunteerProfileResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/volunteers/{uuid} [get]
// @Security BearerAuth
func (h *VolunteerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	profile, err := h.VolunteerService.GetProfile(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "профиль не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.VolunteerProfileResponse{Data: profile}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateProfile godoc
// @Summary Обновление профиля волонтёра
// @Description Обновляет профиль. Доступно владельцу или администратору.
// @Tags Volunteers
// @Accept json
// @Produce json
// @Param uuid path string true "UUID профиля"
// @Param body body requestresponse.UpdateVolunteerProfileRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.VolunteerProfileResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/volunteers/{uuid} [put]
// @Security BearerAuth
func (h *VolunteerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.UpdateVolunteerProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	profile := &model.VolunteerProfile{
		UUID:     chi.URLParam(r, "uuid"),
		FullName: req.FullName,
		Bio:      req.Bio,
		Skills:   req.Skills,
		City:     req.City,
	}

	if err := h.VolunteerService.UpdateProfile(r.Context(), profile); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "профиль не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.VolunteerProfileResponse{Data: profile}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteProfile godoc
// @Summary Удаление профиля волонтёра
// @Description Удаляет профиль. Доступно владельцу или администратору.
// @Tags Volunteers
// @Produce json
// @Param uuid path string true "UUID профиля"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Профиль успешно удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/volunteers/{uuid} [delete]
// @Security BearerAuth
func (h *VolunteerHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.VolunteerService.DeleteProfile(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "профиль не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
