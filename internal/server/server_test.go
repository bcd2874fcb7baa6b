package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobilecontent/internal/blocks"
	"mobilecontent/internal/config"
	"mobilecontent/pkg/mobilecontent"
)

func newTestServer(t *testing.T, cfg config.Config) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return New(cfg, mobilecontent.NewRegistry(), zerolog.New(&logs)), &logs
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, config.Default())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBlocksDerivesBaseFromRequest(t *testing.T) {
	s, logs := newTestServer(t, config.Default())

	req := httptest.NewRequest(http.MethodPost, "http://app.test/v1/blocks",
		strings.NewReader(`<p>Hello</p><img src="/a.png">`))
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []blocks.Block
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []blocks.Block{
		blocks.NewText(blocks.TypeParagraph, "Hello"),
		blocks.NewText(blocks.TypeImage, "http://app.test/a.png"),
	}, got)

	assert.Contains(t, logs.String(), `"path":"/v1/blocks"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestBlocksBaseQueryParameter(t *testing.T) {
	s, _ := newTestServer(t, config.Default())

	req := httptest.NewRequest(http.MethodPost, "/v1/blocks?base=https://cdn.test/assets",
		strings.NewReader(`<img src="a.png">`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"type":"image","content":"https://cdn.test/assets/a.png"}]`, rec.Body.String())
}

func TestBlocksEmptyDocument(t *testing.T) {
	s, _ := newTestServer(t, config.Default())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/blocks", strings.NewReader("")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBlocksUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "http://configured.test"
	cfg.Rules = map[string]config.RuleSpec{"h1": {Type: "heading"}}

	s, _ := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/blocks",
		strings.NewReader(`<h1>Top</h1><a href="/x">X</a>`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"type":"heading","content":"Top"},
		{"type":"link","url":"http://configured.test/x","title":"X"}
	]`, rec.Body.String())
}

func TestBlocksTooLarge(t *testing.T) {
	s, _ := newTestServer(t, config.Default())

	body := strings.NewReader("<p>" + strings.Repeat("a", MaxBodyBytes) + "</p>")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/blocks", body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBlocksMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, config.Default())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/blocks", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
