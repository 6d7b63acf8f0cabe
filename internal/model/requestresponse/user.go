package requestresponse

import "volunteer-match-server/internal/model"

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Email    string `json:"email" example:"newuser@example.com"`
	Password string `json:"password" example:"P@ssw0rd!"`
	Role     string `json:"role" example:"volunteer"`
}

// RegisterResponse : успешный ответ
type RegisterResponse struct {
	Response RegisterData `json:"response"`
}

type RegisterData struct {
	UUID  string `json:"uuid"`
	Email string `json:"email"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid email or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Data struct {
		UUID  string `json:"uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
		Email string `json:"email" example:"user@example.com"`
		Role  string `json:"role" example:"volunteer"`
	} `json:"data"`
}

// UpdateUserRequest : тело запроса на обновление пользователя
type UpdateUserRequest struct {
	Email string `json:"email" example:"updated@example.com"`
}

// UpdateUserResponse : успешный ответ
type UpdateUserResponse struct {
	Response struct {
		Email string `json:"email" example:"updated@example.com"`
	} `json:"response"`
}

// UpdatePasswordRequest : тело запроса
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" example:"P@ssw0rd123"`
}

// UpdatePasswordResponse : успешный ответ
type UpdatePasswordResponse struct {
	Response struct {
		Updated bool `json:"updated" example:"true"`
	} `json:"response"`
}

// ListUsersResponse : успешный ответ
type ListUsersResponse struct {
	Data struct {
		Users      []*model.User `json:"users"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"data"`
}
