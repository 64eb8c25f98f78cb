package api

import (
	"context"

	"github.com/iudanet/homeblocks/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI описывает обращения к хранилищу документов, от которых зависит движок синхронизации.
// Каждый метод - одно обращение к удалённой стороне.
type ClientAPI interface {
	// ListChildren возвращает одну страницу прямых потомков контейнера
	ListChildren(ctx context.Context, containerID, cursor string, pageSize int) (*api.ListChildrenResponse, error)

	// AppendChildren добавляет узлы в контейнер в позицию req.Position
	// и возвращает упорядоченный набор соседей с новыми ID
	AppendChildren(ctx context.Context, containerID string, req api.AppendChildrenRequest) (*api.AppendChildrenResponse, error)

	// GetNode получает один узел
	GetNode(ctx context.Context, id string) (*api.Node, error)

	// UpdateNode заменяет содержимое узла
	UpdateNode(ctx context.Context, id string, req api.UpdateNodeRequest) error

	// DeleteNode удаляет узел вместе с поддеревом
	DeleteNode(ctx context.Context, id string) error

	// CreatePage создает новую страницу
	CreatePage(ctx context.Context, req api.CreatePageRequest) (*api.Node, error)
}

var _ ClientAPI = (*Client)(nil)
