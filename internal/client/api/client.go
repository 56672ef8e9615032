// Package api HTTP клиент для сервера ресторана.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

//go:generate moq -out doer_mock.go . Doer

// Doer отправляет HTTP запросы. *http.Client подходит; тесты и
// инструментирование оборачивают его вместо подмены глобального транспорта.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource возвращает bearer токен для исходящих запросов.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ErrUnauthenticated возвращается из Execute, когда нет пригодной сессии:
// источнику токена нечего отдать или сервер ответил 401.
var ErrUnauthenticated = errors.New("not authenticated")

// StatusError возвращается для любого ответа не 2xx
type StatusError struct {
	Message    string
	Body       []byte
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// StatusCode достает HTTP статус из err, 0 если err не *StatusError
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	doer    Doer
	tokens  TokenSource
	baseURL string
}

// NewHTTPClient возвращает клиент транспортного уровня по умолчанию
func NewHTTPClient(transport http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
		// Настройка обработки редиректов
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Ограничиваем количество редиректов
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			// Копируем заголовки Authorization при редиректе
			if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
				req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
			}
			return nil
		},
	}
}

// NewClient создает новый API клиент. A nil doer means NewHTTPClient(nil).
func NewClient(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = NewHTTPClient(nil)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

// WithTokenSource возвращает копию клиента, которая авторизует каждый запрос
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Execute выполняет описанный payload запрос ровно один раз и возвращает сырое тело ответа.
// С источником токена запрос никогда не уходит анонимно; отсутствующая
// или истекшая сессия дает ErrUnauthenticated.
func (c *Client) Execute(ctx context.Context, payload models.RequestPayload) (json.RawMessage, error) {
	var body io.Reader
	if len(payload.Body) > 0 {
		body = bytes.NewReader(payload.Body)
	}

	method := payload.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(payload.Endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range payload.Headers {
		req.Header.Set(k, v)
	}

	// мутации без сессии в сеть не уходят
	if c.tokens != nil && req.Header.Get("Authorization") == "" {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		if token == "" {
			return nil, fmt.Errorf("%w: empty access token", ErrUnauthenticated)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.send(req)
	if StatusCode(err) == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return resp, err
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, api.PathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, api.PathHealth, nil, nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// FetchTransactions возвращает сырой ответ со списком транзакций. Его формат
// отличается между версиями сервера, поэтому разбор остается вызывающему.
func (c *Client) FetchTransactions(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(api.PathTransactions), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions failed: %w", err)
	}
	return body, nil
}

// doRequest выполняет HTTP запрос с JSON телом
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	respBody, err := c.send(req)
	if err != nil {
		return err
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// send добавляет токен, выполняет запрос и проверяет статус
func (c *Client) send(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil && req.Header.Get("Authorization") == "" {
		token, err := c.tokens.Token(req.Context())
		switch {
		case err == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case err != nil && !errors.Is(err, storage.ErrAuthNotFound):
			return nil, fmt.Errorf("failed to get access token: %w", err)
		}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode, Body: respBody}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			se.Message = errResp.Message
			if se.Message == "" {
				se.Message = errResp.Error
			}
		}
		return nil, se
	}

	return respBody, nil
}

func (c *Client) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}
