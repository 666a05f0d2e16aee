package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/config"
	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:           "127.0.0.1:0",
		ShutdownTimeout:    5 * time.Second,
		DatabaseDriver:     "sqlite",
		DatabaseURL:        fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    time.Hour,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"*"},
		WSPingInterval:     time.Second,
		WSSendBuffer:       8,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, base, method, path, body, token string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, base+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestServer_EndToEnd(t *testing.T) {
	s := newTestServer(t, testConfig())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	status, env := call(t, ts.URL, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com"}`, "")
	require.Equal(t, http.StatusCreated, status)
	var user struct {
		UUID string `json:"uuid"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))

	status, env = call(t, ts.URL, http.MethodGet, "/users/"+user.UUID+"/access-token", "", "")
	require.Equal(t, http.StatusOK, status)
	var tokens struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	status, _ = call(t, ts.URL, http.MethodPost, "/products", `{"name":"Pen","qty":100,"price":1.5}`, tokens.AccessToken)
	require.Equal(t, http.StatusCreated, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Event string `json:"event"`
		Data  struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, events.ProductCreated, frame.Event)
	assert.Equal(t, "Pen", frame.Data.Name)

	status, env = call(t, ts.URL, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Error)
}

func TestServer_UnreachableBridgesAreSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.NATSURL = "nats://127.0.0.1:1"
	cfg.RedisURL = "redis://127.0.0.1:1/0"
	cfg.MQTTBrokerURL = "tcp://127.0.0.1:1"
	cfg.MQTTClientID = "catalog-test"
	cfg.InfluxURL = "http://127.0.0.1:1"

	s := newTestServer(t, cfg)
	assert.Empty(t, s.closers)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := newTestServer(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	require.Eventually(t, func() bool { return s.echo.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseDriver = "oracle"
	_, err := OpenDatabase(cfg, logging.Discard())
	assert.Error(t, err)
}
