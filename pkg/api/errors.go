package api

// Коды ошибок, которые хранилище возвращает в поле "code"
const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "object_not_found"
	CodeUnauthorized = "unauthorized"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal_server_error"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Object  string `json:"object"`            // всегда "error"
	Code    string `json:"code"`              // машиночитаемый код ошибки
	Message string `json:"message,omitempty"` // описание ошибки
	Status  int    `json:"status"`            // HTTP статус
}
