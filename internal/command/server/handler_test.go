package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-xcmacro/internal/config"
	"github.com/lwmacct/251207-go-pkg-xcmacro/pkg/xcmacro"
)

func newTestHandler() http.Handler {
	return server.NewHandler(xcmacro.Table{
		"PRODUCT_NAME": "Demo",
		"FLAGS":        "-ObjC",
	}, xcmacro.DefaultMaxDepth, config.DefaultBudget)
}

func TestHandler_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_Expand(t *testing.T) {
	body := `{
		"inputs": ["$(PRODUCT_NAME)_$(CONFIG)", "$(FLAGS)", "$(GONE) $GONE"],
		"settings": {"CONFIG": "Debug", "FLAGS": "$(inherited) -lz"}
	}`
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expand", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp server.ExpandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Demo_Debug", "-ObjC -lz", " $GONE"}, resp.Outputs)
	assert.Equal(t, []server.Unresolved{
		{Source: "$(GONE)", Name: "GONE", Style: "parenthesis", Reason: "undefined", Input: 2},
		{Source: "$GONE", Name: "GONE", Style: "simple", Reason: "undefined", Input: 2},
	}, resp.Unresolved)
}

func TestHandler_ExpandDoesNotLeakSettings(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expand",
		strings.NewReader(`{"inputs": ["$(X)"], "settings": {"X": "x"}}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expand", strings.NewReader(`{"inputs": ["[$(X)]"]}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp server.ExpandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"[]"}, resp.Outputs)
}

func TestHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"unknown field", `{"input": "x"}`, http.StatusBadRequest},
		{"too large", `{"inputs": ["` + strings.Repeat("a", 2<<20) + `"]}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expand", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), "decode request")
		})
	}
}

func TestHandler_ExpandBudget(t *testing.T) {
	settings := map[string]string{"A40": "xx"}
	for i := range 40 {
		settings[fmt.Sprintf("A%d", i)] = fmt.Sprintf("$(A%d)$(A%d)", i+1, i+1)
	}
	body, err := json.Marshal(server.ExpandRequest{Settings: settings, Inputs: []string{"$(PRODUCT_NAME)", "$(A0)"}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/expand", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "input 1: xcmacro: expansion budget exceeded")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expand", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
