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

type OpportunityHandler struct {
	ports.OpportunityService
}

func NewOpportunityHandler(opportunityService ports.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService}
}

// CreateOpportunity godoc
// @Summary Создание вакансии
// @Description Создает вакансию от имени организации текущего пользователя. Новая вакансия получает статус open.
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateOpportunityRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.OpportunityResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities [post]
// @Security BearerAuth
func (h *OpportunityHandler) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateOpportunityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	opportunity := &model.Opportunity{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		City:        req.City,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	}

	created, err := h.OpportunityService.CreateOpportunity(r.Context(), opportunity)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "заголовок вакансии обязателен"),
			strings.Contains(err.Error(), "вместимость"),
			strings.Contains(err.Error(), "дата окончания"):
			sendErrorResponse(w, 400, "bad request")
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"),
			strings.Contains(err.Error(), "сначала создайте организацию"):
			sendErrorResponse(w, 403, "доступ запрещён")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.OpportunityResponse{Data: created}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetOpportunity godoc
// @Summary Получение вакансии
// @Description Возвращает вакансию по UUID. Ответ кэшируется в Redis.
// @Tags Opportunities
// @Produce json
// @Param uuid path string true "UUID вакансии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.OpportunityResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities/{uuid} [get]
// @Security BearerAuth
func (h *OpportunityHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	opportunity, err := h.OpportunityService.GetOpportunity(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "вакансия не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.OpportunityResponse{Data: opportunity}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateOpportunity godoc
// @Summary Обновление вакансии
// @Description Обновляет вакансию и инвалидирует её кэш. Доступно владельцу организации или администратору.
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param uuid path string true "UUID вакансии"
// @Param body body requestresponse.UpdateOpportunityRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.OpportunityResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities/{uuid} [put]
// @Security BearerAuth
func (h *OpportunityHandler) UpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.UpdateOpportunityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	opportunity := &model.Opportunity{
		UUID:        chi.URLParam(r, "uuid"),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		City:        req.City,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Status:      req.Status,
	}

	if err := h.OpportunityService.UpdateOpportunity(r.Context(), opportunity); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "недопустимый статус"),
			strings.Contains(err.Error(), "вместимость"):
			sendErrorResponse(w, 400, "bad request")
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"),
			strings.Contains(err.Error(), "сначала создайте организацию"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "вакансия не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.OpportunityResponse{Data: opportunity}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteOpportunity godoc
// @Summary Удаление вакансии
// @Description Удаляет вакансию и инвалидирует её кэш. Доступно владельцу организации или администратору.
// @Tags Opportunities
// @Produce json
// @Param uuid path string true "UUID вакансии"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Вакансия успешно удалена"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities/{uuid} [delete]
// @Security BearerAuth
func (h *OpportunityHandler) DeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	if err := h.OpportunityService.DeleteOpportunity(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"),
			strings.Contains(err.Error(), "сначала создайте организацию"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "вакансия не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOpportunities godoc
// @Summary Получение списка вакансий
// @Description Возвращает список вакансий с фильтром (status, category, city) и постраничной навигацией (cursor-based).
// @Tags Opportunities
// @Produce json
// @Param key query string false "Поле фильтра: status, category или city"
// @Param value query string false "Значение фильтра"
// @Param cursor query string false "Курсор для пагинации"
// @Param limit query int false "Количество вакансий в списке" default(50) minimum(1) maximum(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListOpportunitiesResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/opportunities [get]
// @Security BearerAuth
func (h *OpportunityHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filterKey := r.URL.Query().Get("key")
	filterValue := r.URL.Query().Get("value")
	cursor := r.URL.Query().Get("cursor")
	limit := parseLimit(r, 50, 100)

	opportunities, nextCursor, err := h.OpportunityService.ListOpportunities(r.Context(), filterKey, filterValue, cursor, limit)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "недопустимое поле фильтра"):
			sendErrorResponse(w, 400, "bad request")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ListOpportunitiesResponse{}
	resp.Data.Opportunities = opportunities
	resp.Data.NextCursor = nextCursor

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
