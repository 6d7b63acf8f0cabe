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

type UploadHandler struct {
	ports.UploadService
}

func NewUploadHandler(uploadService ports.UploadService) *UploadHandler {
	return &UploadHandler{uploadService}
}

// CreateUpload godoc
// @Summary Регистрация файла
// @Description Регистрирует файл и возвращает pre-signed PUT URL. Клиент загружает файл в хранилище напрямую по этому URL.
// @Tags Uploads
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateUploadRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CreateUploadResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/uploads [post]
// @Security BearerAuth
func (h *UploadHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.CreateUploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	upload := &model.Upload{
		FilenameOriginal: req.FilenameOriginal,
		SizeBytes:        req.SizeBytes,
		MimeType:         req.MimeType,
	}

	result, err := h.UploadService.CreateUpload(r.Context(), upload)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "имя файла обязательно"):
			sendErrorResponse(w, 400, "bad request")
		case strings.Contains(err.Error(), "не авторизован"):
			sendErrorResponse(w, 401, "пользователь не авторизован")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.CreateUploadResponse{}
	resp.Response.UUID = result.Upload.UUID
	resp.Response.PutURL = result.PutURL

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetUpload godoc
// @Summary Получение файла
// @Description Возвращает метаданные файла с pre-signed GET URL. Доступно владельцу или администратору.
// @Tags Uploads
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/uploads/{uuid} [get]
// @Security BearerAuth
func (h *UploadHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	upload, err := h.UploadService.GetUpload(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "файл не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.UploadResponse{Data: upload}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ListUploads godoc
// @Summary Список файлов пользователя
// @Description Возвращает файлы текущего пользователя с pre-signed GET URL.
// @Tags Uploads
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListUploadsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/uploads [get]
// @Security BearerAuth
func (h *UploadHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	uploads, err := h.UploadService.ListUploads(r.Context())
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

	resp := requestresponse.ListUploadsResponse{}
	resp.Data.Uploads = uploads

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteUpload godoc
// @Summary Удаление файла
// @Description Удаляет запись о файле и сам объект из хранилища. Доступно владельцу или администратору.
// @Tags Uploads
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteUploadResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/uploads/{uuid} [delete]
// @Security BearerAuth
func (h *UploadHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.UploadService.DeleteUpload(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"),
			strings.Contains(err.Error(), "доступ запрещён"):
			sendErrorResponse(w, 403, "доступ запрещён")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, 404, "файл не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.DeleteUploadResponse{}
	resp.Response.Deleted = true

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
