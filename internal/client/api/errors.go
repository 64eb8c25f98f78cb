package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// maxRetryAfter ограничивает ожидание, которое может назначить сервер
const maxRetryAfter = time.Minute

// RequestError описывает любую неудачу обращения к хранилищу:
// транспортную ошибку, неуспешный статус или некорректное тело ответа.
type RequestError struct {
	Err        error
	Method     string
	Path       string
	Code       string
	Message    string
	StatusCode int
	// RetryAfter пауза из заголовка Retry-After; 0, если сервер её не прислал
	RetryAfter time.Duration
}

// Error implements error.
func (e *RequestError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Code != "":
		return fmt.Sprintf("%s %s: server error (%d, %s): %s", e.Method, e.Path, e.StatusCode, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s %s: request failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
}

// Unwrap returns the underlying transport or decode error, if any.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the document store.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// shouldRetry решает, имеет ли смысл повторить запрос.
// 429 повторяется всегда: хранилище отклонило запрос до обработки.
// Транспортные ошибки и 5xx шлюза повторяются только для идемпотентных запросов.
func shouldRetry(err error, idempotent bool) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}

	switch reqErr.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case 0:
		return idempotent
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return idempotent && reqErr.Err == nil
	default:
		return false
	}
}

// parseRetryAfter разбирает Retry-After в секундах или в виде HTTP-даты
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	var wait time.Duration
	if seconds, err := strconv.Atoi(value); err == nil {
		wait = time.Duration(seconds) * time.Second
	} else if at, err := http.ParseTime(value); err == nil {
		wait = at.Sub(now)
	}
	if wait <= 0 {
		return 0
	}
	return min(wait, maxRetryAfter)
}

func retryAfterOf(err error) time.Duration {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.RetryAfter
	}
	return 0
}
