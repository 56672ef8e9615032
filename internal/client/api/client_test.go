package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

type staticToken struct {
	err   error
	token string
}

func (s staticToken) Token(context.Context) (string, error) {
	return s.token, s.err
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/", nil)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())

	httpClient, ok := client.doer.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, httpClient.Timeout)
}

func TestClient_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "abc", r.Header.Get("X-Request-Id"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Pickup", body["delivery_type"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"42","order_number":"ORD-42"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithTokenSource(staticToken{token: "token-123"})

	resp, err := client.Execute(context.Background(), models.RequestPayload{
		Endpoint: "/api/orders",
		Method:   http.MethodPost,
		Headers:  map[string]string{"X-Request-Id": "abc"},
		Body:     json.RawMessage(`{"delivery_type":"Pickup"}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42","order_number":"ORD-42"}`, string(resp))
}

func TestClient_Execute_StatusError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		status      int
	}{
		{name: "json error body", status: http.StatusBadRequest, body: `{"error":"bad_request","message":"items required"}`, wantMessage: "items required"},
		{name: "error only", status: http.StatusConflict, body: `{"error":"duplicate"}`, wantMessage: "duplicate"},
		{name: "plain body", status: http.StatusServiceUnavailable, body: `upstream down`, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			_, err := client.Execute(context.Background(), models.RequestPayload{Endpoint: "/api/orders", Method: http.MethodPost})
			require.Error(t, err)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantMessage, se.Message)
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestClient_Execute_WithoutSession(t *testing.T) {
	tests := []struct {
		err   error
		name  string
		token string
	}{
		{name: "not logged in", err: storage.ErrAuthNotFound},
		{name: "session expired", err: errors.New("session expired, please log in again")},
		{name: "storage failure", err: errors.New("storage is closed")},
		{name: "empty token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &DoerMock{}
			client := NewClient("http://backend", doer).WithTokenSource(staticToken{err: tt.err, token: tt.token})

			_, err := client.Execute(context.Background(), models.RequestPayload{Endpoint: "/api/orders"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnauthenticated)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Empty(t, doer.DoCalls(), "request must not reach the network")
		})
	}
}

func TestClient_Execute_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer revoked", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithTokenSource(staticToken{token: "revoked"})

	_, err := client.Execute(context.Background(), models.RequestPayload{Endpoint: "/api/orders"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestClient_FetchTransactions_AnonymousWithoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil).WithTokenSource(staticToken{err: storage.ErrAuthNotFound})

	body, err := client.FetchTransactions(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestClient_Execute_TransportError(t *testing.T) {
	doer := &DoerMock{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	client := NewClient("http://backend", doer)

	_, err := client.Execute(context.Background(), models.RequestPayload{
		Endpoint: "https://payments.example/api/charge",
		Method:   http.MethodPost,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, StatusCode(err))

	require.Len(t, doer.DoCalls(), 1)
	assert.Equal(t, "https://payments.example/api/charge", doer.DoCalls()[0].Req.URL.String())
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathLogin, r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "frontdesk", req.Username)
		assert.Equal(t, "secret", req.Password)

		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "jwt",
			UserID:      "user-1",
			Username:    "frontdesk",
			Role:        "frontdesk",
			ExpiresIn:   3600,
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, nil).Login(context.Background(), api.LoginRequest{Username: "frontdesk", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestClient_Login_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unauthorized", Message: "invalid credentials"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).Login(context.Background(), api.LoginRequest{Username: "x", Password: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestClient_HealthAndTransactions(t *testing.T) {
	var unhealthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.PathHealth:
			if unhealthy.Load() {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		case api.PathTransactions:
			_, _ = w.Write([]byte(`{"results":[{"id":"t1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	ctx := context.Background()

	require.NoError(t, client.Health(ctx))

	raw, err := client.FetchTransactions(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[{"id":"t1"}]}`, string(raw))

	unhealthy.Store(true)
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(client.Health(ctx)))
}
