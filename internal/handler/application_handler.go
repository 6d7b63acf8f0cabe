package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"volunteer-match-server/internal/model/requestresponse"
	"volunteer-match-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

type ApplicationHandler struct {
	ports.ApplicationService
}

func NewApplicationHandler(applicationService ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService}
}

// Apply godoc
// @Summary Подача заявки на вакансию
// @Description Волонтёр подаёт заявку на открытую вакансию. Повторная заявка на ту же вакансию запрещена, пока прошлая не отозвана.
// @Tags Applications
// @Accept json
// @Produce json
// @Param uuid path string true "UUID вакансии"
// @Param body body requestresponse.CreateApplicationRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ApplicationResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities/{uuid}/applications [post]
// @Security BearerAuth
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	application, err := h.ApplicationService.Apply(r.Context(), chi.URLParam(r, "uuid"), req.Message)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"),
			strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "вакансия не найдена")
		case strings.Contains(err.Error(), "вакансия закрыта"),
			strings.Contains(err.Error(), "заявка уже подана"):
			sendErrorResponse(w, 409, "заявка не может быть подана")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ApplicationResponse{Data: application}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Withdraw godoc
// @Summary Отзыв заявки
// @Description Волонтёр отзывает собственную заявку. Отклонённую заявку отозвать нельзя.
// @Tags Applications
// @Produce json
// @Param uuid path string true "UUID заявки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Заявка отозвана"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/applications/{uuid} [delete]
// @Security BearerAuth
func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	if err := h.ApplicationService.Withdraw(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "заявка не найдена")
		case strings.Contains(err.Error(), "уже отозвана"),
			strings.Contains(err.Error(), "нельзя отозвать"):
			sendErrorResponse(w, 409, "заявка не может быть отозвана")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Decide godoc
// @Summary Решение по заявке
// @Description Организация принимает (accepted) или отклоняет (rejected) заявку на свою вакансию. При принятии проверяется вместимость вакансии.
// @Tags Applications
// @Accept json
// @Produce json
// @Param uuid path string true "UUID заявки"
// @Param body body requestresponse.DecideApplicationRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DecideApplicationRequest
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/applications/{uuid}/decision [put]
// @Security BearerAuth
func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.DecideApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.ApplicationService.Decide(r.Context(), chi.URLParam(r, "uuid"), req.Status); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "недопустимый статус"):
			sendErrorResponse(w, 400, "bad request")
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "заявка не найдена")
		case strings.Contains(err.Error(), "решение уже принято"),
			strings.Contains(err.Error(), "мест больше нет"):
			sendErrorResponse(w, 409, "решение не может быть принято")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(req)
}

// ListForOpportunity godoc
// @Summary Заявки на вакансию
// @Description Возвращает заявки на вакансию. Доступно владельцу организации или администратору.
// @Tags Applications
// @Produce json
// @Param uuid path string true "UUID вакансии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListApplicationsResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities/{uuid}/applications [get]
// @Security BearerAuth
func (h *ApplicationHandler) ListForOpportunity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	applications, err := h.ApplicationService.ListForOpportunity(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "вакансия не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ListApplicationsResponse{}
	resp.Data.Applications = applications

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ListMine godoc
// @Summary Собственные заявки волонтёра
// @Description Возвращает заявки текущего пользователя.
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListApplicationsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/applications [get]
// @Security BearerAuth
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	applications, err := h.ApplicationService.ListForVolunteer(r.Context())
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"):
			sendErrorResponse(w, 401, "пользователь не авторизован")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ListApplicationsResponse{}
	resp.Data.Applications = applications

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
