package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/dugout/internal/api/handler"
	"github.com/albapepper/dugout/internal/config"
	"github.com/albapepper/dugout/internal/describe"
	"github.com/albapepper/dugout/internal/player"
	"github.com/albapepper/dugout/internal/seed"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeStore struct {
	players  map[int64]*player.Player
	lastSort player.SortKey
	failAll  bool
}

func (s *fakeStore) GetAll(ctx context.Context, key player.SortKey) ([]player.Player, error) {
	s.lastSort = key
	if s.failAll {
		return nil, errors.New("boom")
	}
	var out []player.Player
	for _, p := range s.players {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*player.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, player.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Update(ctx context.Context, id int64, upd player.Update) (*player.Player, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	p, ok := s.players[id]
	if !ok {
		return nil, player.ErrNotFound
	}
	upd.Apply(p)
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	return len(s.players), nil
}

type fakeDescriber struct {
	store *fakeStore
	text  string
	err   error
	calls int
}

func (d *fakeDescriber) GetOrCreate(ctx context.Context, id int64) (string, error) {
	if _, ok := d.store.players[id]; !ok {
		return "", player.ErrNotFound
	}
	d.calls++
	if d.err != nil {
		return "", fmt.Errorf("%w: %v", describe.ErrGeneration, d.err)
	}
	return d.text, nil
}

type fakeHealth struct{ err error }

func (f *fakeHealth) HealthCheck(ctx context.Context) error { return f.err }

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type harness struct {
	store     *fakeStore
	describer *fakeDescriber
	health    *fakeHealth
	syncErr   error
	srv       *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ruth := &player.Player{ID: 1, PlayerName: "Babe Ruth", Position: "RF", Games: 140, AtBats: 500, Hits: 200}
	ruth.RecomputeRates()

	h := &harness{
		store:  &fakeStore{players: map[int64]*player.Player{1: ruth}},
		health: &fakeHealth{},
	}
	h.describer = &fakeDescriber{store: h.store, text: "The Sultan of Swat."}

	syncFn := func(ctx context.Context) (seed.SyncResult, error) {
		if h.syncErr != nil {
			return seed.SyncResult{}, h.syncErr
		}
		return seed.SyncResult{Created: 3, Updated: 22}, nil
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		CORSAllowOrigins: []string{"http://localhost:5173"},
		RateLimitEnabled: false,
	}

	router := NewRouter(handler.New(h.store, h.describer, syncFn, h.health, logger), cfg)
	h.srv = httptest.NewServer(router)
	t.Cleanup(h.srv.Close)
	return h
}

func (h *harness) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	return body.Error.Code
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRoot(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Dugout API")
}

func TestGetPlayers_DefaultSort(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/api/players", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, player.SortHits, h.store.lastSort)

	var players []player.Player
	require.NoError(t, json.Unmarshal(data, &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Babe Ruth", players[0].PlayerName)
	assert.Equal(t, 0.400, players[0].BattingAverage)
}

func TestGetPlayers_SortParamForwarded(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodGet, "/api/players?sort_by=home_runs", "")
	assert.Equal(t, player.SortHomeRuns, h.store.lastSort)

	// Unknown keys fall back to hits.
	h.do(t, http.MethodGet, "/api/players?sort_by=salary", "")
	assert.Equal(t, player.SortHits, h.store.lastSort)
}

func TestGetPlayers_InternalError(t *testing.T) {
	h := newHarness(t)
	h.store.failAll = true
	resp, data := h.do(t, http.MethodGet, "/api/players", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, data))
}

func TestGetPlayer(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/api/players/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var p player.Player
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, int64(1), p.ID)
}

func TestGetPlayer_NotFound(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/api/players/99", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, data))
}

func TestGetPlayer_BadID(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/api/players/ruth", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", errorCode(t, data))
}

func TestUpdatePlayer_RecomputesAndFlags(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodPut, "/api/players/1", `{"hits": 210}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var p player.Player
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, 210, p.Hits)
	assert.Equal(t, 0.420, p.BattingAverage)
	assert.True(t, p.IsEdited)
}

func TestUpdatePlayer_NegativeStatRejected(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodPut, "/api/players/1", `{"hits": -4}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, data))
	// The row must be left unchanged.
	assert.Equal(t, 200, h.store.players[1].Hits)
	assert.False(t, h.store.players[1].IsEdited)
}

func TestUpdatePlayer_MalformedBody(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodPut, "/api/players/1", `{"hits": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, data))
}

func TestUpdatePlayer_NotFound(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodPut, "/api/players/99", `{"hits": 210}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, data))
}

func TestGetDescription(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/api/players/1/description", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "The Sultan of Swat.", body["description"])
}

func TestGetDescription_PlayerMissing(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/api/players/99/description", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, data))
	assert.Zero(t, h.describer.calls)
}

func TestGetDescription_GenerationFailure(t *testing.T) {
	h := newHarness(t)
	h.describer.err = errors.New("provider down")
	resp, data := h.do(t, http.MethodGet, "/api/players/1/description", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(t, data))
	// The provider's own message must not leak to the client.
	assert.NotContains(t, string(data), "provider down")
}

func TestSyncPlayers(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodPost, "/api/players/sync", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result seed.SyncResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 22, result.Updated)
}

func TestSyncPlayers_UpstreamFailure(t *testing.T) {
	h := newHarness(t)
	h.syncErr = errors.New("feed unreachable")
	resp, data := h.do(t, http.MethodPost, "/api/players/sync", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(t, data))
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "healthy")
}

func TestHealthDB_Healthy(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/health/db", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, float64(1), body["players"])
}

func TestHealthDB_Unhealthy(t *testing.T) {
	h := newHarness(t)
	h.health.err = errors.New("no connection")
	resp, data := h.do(t, http.MethodGet, "/health/db", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(data), "disconnected")
}

func TestEmbeddedApp(t *testing.T) {
	h := newHarness(t)
	resp, data := h.do(t, http.MethodGet, "/app/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Dugout")
	assert.Contains(t, string(data), "app.js")
}
