package blocktree

import (
	"context"
	"io"
	"log/slog"

	httpClient "github.com/iudanet/homeblocks/internal/client/api"
	"github.com/iudanet/homeblocks/internal/models"
	"github.com/iudanet/homeblocks/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service синхронизирует дерево блоков в памяти с удалённым хранилищем документов
type Service interface {
	// ReadTree читает поддерево containerID целиком с учётом фильтра
	ReadTree(ctx context.Context, containerID string, filter Filter) ([]models.Block, error)
	// WriteTree записывает список блоков в containerID, начиная с позиции anchor
	WriteTree(ctx context.Context, containerID string, blocks []models.Block, anchor Anchor) (*WriteResult, error)
	// ReplaceChildren удаляет всех прямых потомков containerID и записывает blocks в конец
	ReplaceChildren(ctx context.Context, containerID string, blocks []models.Block) (*WriteResult, error)
	// Update заменяет содержимое одного узла
	Update(ctx context.Context, id string, block models.Block) error
	// Delete удаляет (архивирует) узел вместе с поддеревом
	Delete(ctx context.Context, id string) error
}

type service struct {
	remote      httpClient.ClientAPI
	logger      *slog.Logger
	opaqueTypes map[string]bool
	pageSize    int
}

// Option configures the service.
type Option func(*service)

// WithPageSize sets the page size used when listing children.
// Values outside 1..api.MaxPageSize are ignored.
func WithPageSize(size int) Option {
	return func(s *service) {
		if size > 0 && size <= api.MaxPageSize {
			s.pageSize = size
		}
	}
}

// WithOpaqueTypes replaces the set of node types whose children are never read.
func WithOpaqueTypes(types ...string) Option {
	return func(s *service) {
		s.opaqueTypes = make(map[string]bool, len(types))
		for _, t := range types {
			s.opaqueTypes[t] = true
		}
	}
}

// NewService создаёт движок синхронизации поверх клиента хранилища
func NewService(remote httpClient.ClientAPI, logger *slog.Logger, opts ...Option) Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &service{
		remote:   remote,
		logger:   logger,
		pageSize: api.MaxPageSize,
		opaqueTypes: map[string]bool{
			api.TypeChildPage:     true,
			api.TypeChildDatabase: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
