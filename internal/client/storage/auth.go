package storage

import (
	"context"
	"strings"
)

// AuthStorage хранит integration tokens, по одному на сервер хранилища документов.
// Токены хранятся как есть: файл базы создаётся с правами 0600.
type AuthStorage interface {
	// SaveAuth сохраняет токен для auth.ServerURL, заменяя предыдущий
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth возвращает токен сервера или ErrAuthNotFound
	GetAuth(ctx context.Context, serverURL string) (*AuthData, error)

	// DeleteAuth удаляет токен сервера (logout)
	DeleteAuth(ctx context.Context, serverURL string) error

	// ListAuth возвращает все сохранённые токены, упорядоченные по серверу
	ListAuth(ctx context.Context) ([]AuthData, error)
}

// AuthData represents the stored integration token.
// ExpiresAt == 0 означает токен без срока действия.
type AuthData struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	Subject   string `json:"subject,omitempty"`
	ExpiresAt int64  `json:"expires_at"`
}

// Expired reports whether the token had expired by unix time now
func (a AuthData) Expired(now int64) bool {
	return a.ExpiresAt != 0 && now >= a.ExpiresAt
}

// ServerKey приводит адрес сервера к ключу хранилища:
// "HTTP://Localhost:8080/" и "http://localhost:8080" дают один ключ.
func ServerKey(serverURL string) string {
	key := strings.TrimRight(strings.TrimSpace(serverURL), "/")
	scheme, rest, ok := strings.Cut(key, "://")
	if !ok {
		return strings.ToLower(key)
	}
	host, path, _ := strings.Cut(rest, "/")
	key = strings.ToLower(scheme) + "://" + strings.ToLower(host)
	if path != "" {
		key += "/" + path
	}
	return key
}
