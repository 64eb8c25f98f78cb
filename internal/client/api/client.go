package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/iudanet/homeblocks/pkg/api"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 500 * time.Millisecond
)

// Client представляет HTTP клиент для взаимодействия с хранилищем документов
type Client struct {
	httpClient     *http.Client
	logger         *slog.Logger
	baseURL        string
	token          string
	maxRetries     uint64
	initialBackoff time.Duration
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, для тестов)
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger задаёт логгер для сообщений о повторных попытках
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetry задаёт количество повторов и начальную задержку между ними.
// maxRetries = 0 отключает повторы.
func WithRetry(maxRetries uint64, initialBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		token:          token,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListChildren возвращает одну страницу прямых потомков контейнера
func (c *Client) ListChildren(ctx context.Context, containerID, cursor string, pageSize int) (*api.ListChildrenResponse, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("start_cursor", cursor)
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp api.ListChildrenResponse
	path := "/v1/blocks/" + url.PathEscape(containerID) + "/children"
	if err := c.doRequest(ctx, http.MethodGet, path, query, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AppendChildren добавляет до api.MaxSiblingsPerAppend узлов в контейнер
func (c *Client) AppendChildren(ctx context.Context, containerID string, req api.AppendChildrenRequest) (*api.AppendChildrenResponse, error) {
	var resp api.AppendChildrenResponse
	path := "/v1/blocks/" + url.PathEscape(containerID) + "/children"
	// append не идемпотентен: повторяем только явный отказ по rate limit
	if err := c.doRequest(ctx, http.MethodPatch, path, nil, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetNode получает один узел по ID
func (c *Client) GetNode(ctx context.Context, id string) (*api.Node, error) {
	var node api.Node
	if err := c.doRequest(ctx, http.MethodGet, "/v1/blocks/"+url.PathEscape(id), nil, nil, &node, true); err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateNode заменяет содержимое узла
func (c *Client) UpdateNode(ctx context.Context, id string, req api.UpdateNodeRequest) error {
	return c.doRequest(ctx, http.MethodPatch, "/v1/blocks/"+url.PathEscape(id), nil, req, nil, true)
}

// DeleteNode удаляет узел вместе с поддеревом
func (c *Client) DeleteNode(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/v1/blocks/"+url.PathEscape(id), nil, nil, nil, true)
}

// CreatePage создает новую страницу, которую можно использовать как контейнер
func (c *Client) CreatePage(ctx context.Context, req api.CreatePageRequest) (*api.Node, error) {
	var node api.Node
	if err := c.doRequest(ctx, http.MethodPost, "/v1/pages", nil, req, &node, false); err != nil {
		return nil, err
	}
	return &node, nil
}

// doRequest выполняет HTTP запрос с повторами по политике backoff.
// idempotent определяет, можно ли повторять запрос после транспортной ошибки или 5xx.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any, idempotent bool) error {
	var payload []byte
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = jsonData
	}

	attempt := 0
	hint := &retryAfterBackOff{}
	operation := func() error {
		attempt++
		err := c.send(ctx, method, path, query, payload, result)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !shouldRetry(err, idempotent) {
			return backoff.Permanent(err)
		}
		hint.next = retryAfterOf(err)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialBackoff

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Retrying document store request",
			"method", method,
			"path", path,
			"attempt", attempt,
			"wait", wait,
			"error", err)
	}

	// WithMaxRetries(b, 0) в backoff v2 не ограничивает число попыток
	var retries backoff.BackOff = &backoff.StopBackOff{}
	if c.maxRetries > 0 {
		retries = backoff.WithMaxRetries(policy, c.maxRetries)
	}

	hint.delegate = retries

	return backoff.RetryNotify(operation, backoff.WithContext(hint, ctx), notify)
}

// retryAfterBackOff подставляет паузу, назначенную сервером, вместо очередного шага политики.
// Лимит попыток по-прежнему решает delegate.
type retryAfterBackOff struct {
	delegate backoff.BackOff
	next     time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	wait := b.delegate.NextBackOff()
	if wait == backoff.Stop {
		return wait
	}
	if b.next > 0 {
		wait = b.next
		b.next = 0
	}
	return wait
}

func (b *retryAfterBackOff) Reset() {
	b.next = 0
	b.delegate.Reset()
}

// send выполняет одну попытку запроса
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set(api.VersionHeader, api.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Object == api.ObjectError {
			reqErr.Code = errResp.Code
			reqErr.Message = errResp.Message
		}
		return reqErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &RequestError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}
