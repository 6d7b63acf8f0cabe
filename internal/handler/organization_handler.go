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

type OrganizationHandler struct {
	ports.OrganizationService
}

func NewOrganizationHandler(organizationService ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService}
}

// CreateOrganization godoc
// @Summary Создание организации
// @Description Создает организацию для текущего пользователя с ролью organization. У пользователя может быть только одна организация.
// @Tags Organizations
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateOrganizationRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.OrganizationResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/organizations [post]
// @Security BearerAuth
func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateOrganizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	organization := &model.Organization{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		City:        req.City,
	}

	created, err := h.OrganizationService.CreateOrganization(r.Context(), organization)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "название организации обязательно"):
			sendErrorResponse(w, 400, "bad request")
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "уже создана"):
			sendErrorResponse(w, 409, "организация уже создана")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.OrganizationResponse{Data: created}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetOrganization godoc
// @Summary Получение организации
// @Description Возвращает организацию по UUID. Доступно всем авторизованным пользователям.
// @Tags Organizations
// @Produce json
// @Param uuid path string true "UUID организации"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.OrganizationResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/organizations/{uuid} [get]
// @Security BearerAuth
func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	organization, err := h.OrganizationService.GetOrganization(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "организация не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.OrganizationResponse{Data: organization}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateOrganization godoc
// @Summary Обновление организации
// @Description Обновляет данные организации. Доступно владельцу или администратору.
// @Tags Organizations
// @Accept json
// @Produce json
// @Param uuid path string true "UUID организации"
// @Param body body requestresponse.UpdateOrganizationRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.OrganizationResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/organizations/{uuid} [put]
// @Security BearerAuth
func (h *OrganizationHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.UpdateOrganizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	organization := &model.Organization{
		UUID:        chi.URLParam(r, "uuid"),
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		City:        req.City,
	}

	if err := h.OrganizationService.UpdateOrganization(r.Context(), organization); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "организация не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.OrganizationResponse{Data: organization}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteOrganization godoc
// @Summary Удаление организации
// @Description Удаляет организацию. Доступно владельцу или администратору.
// @Tags Organizations
// @Produce json
// @Param uuid path string true "UUID организации"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Организация успешно удалена"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/organizations/{uuid} [delete]
// @Security BearerAuth
func (h *OrganizationHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := h.OrganizationService.DeleteOrganization(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, 404, "организация не найдена")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrganizations godoc
// @Summary Получение списка организаций
// @Description Возвращает список организаций с постраничной навигацией (cursor-based).
// @Tags Organizations
// @Produce json
// @Param cursor query string false "Курсор для пагинации"
// @Param limit query int false "Количество организаций в списке" default(50) minimum(1) maximum(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListOrganizationsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/organizations [get]
// @Security BearerAuth
func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cursor := r.URL.Query().Get("cursor")
	limit := parseLimit(r, 50, 100)

	organizations, nextCursor, err := h.OrganizationService.ListOrganizations(r.Context(), cursor, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListOrganizationsResponse{}
	resp.Data.Organizations = organizations
	resp.Data.NextCursor = nextCursor

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
