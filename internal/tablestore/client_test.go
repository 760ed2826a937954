package tablestore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/logging"
)

type capturedRequest struct {
	method string
	path   string
	query  string
	body   string
	header http.Header
}

func newTestClient(t *testing.T, status int, respBody string, captured *capturedRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
			header: r.Header.Clone(),
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(srv.URL, "test-key", log)
}

func TestSelectOne_DecodesRow(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, http.StatusOK, `[{"nick":"youiz","verificado":true}]`, &captured)

	var row struct {
		Nick       string `json:"nick"`
		Verificado bool   `json:"verificado"`
	}
	err := c.SelectOne(context.Background(), "usuarios", &row, Eq("nick", "youiz"))
	require.NoError(t, err)
	require.Equal(t, "youiz", row.Nick)
	require.True(t, row.Verificado)

	require.Equal(t, http.MethodGet, captured.method)
	require.Equal(t, "/usuarios", captured.path)
	require.Contains(t, captured.query, "nick=eq.youiz")
	require.Contains(t, captured.query, "limit=1")
	require.Equal(t, "test-key", captured.header.Get("apikey"))
	require.Equal(t, "Bearer test-key", captured.header.Get("Authorization"))
}

func TestSelectOne_EmptyIsNotFound(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, http.StatusOK, `[]`, &captured)

	var row json.RawMessage
	err := c.SelectOne(context.Background(), "usuarios", &row, Eq("nick", "ghost"))
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSelect_OrderLimitAndRangeFilter(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, http.StatusOK, `[]`, &captured)

	cutoff := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	var rows []json.RawMessage
	err := c.Select(context.Background(), "sessoes", Query{
		Filters:    []Filter{Eq("ativa", true), Gt("data_expiracao", cutoff)},
		OrderBy:    "data_criacao",
		Descending: true,
		Limit:      1,
	}, &rows)
	require.NoError(t, err)

	require.Contains(t, captured.query, "ativa=eq.true")
	require.Contains(t, captured.query, "data_expiracao=gt.2026-02-01T12%3A00%3A00Z")
	require.Contains(t, captured.query, "order=data_criacao.desc")
}

func TestInsert_PostsJSON(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, http.StatusCreated, ``, &captured)

	err := c.Insert(context.Background(), "codigos_verificacao", map[string]any{"codigo": "A-123"})
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, captured.method)
	require.JSONEq(t, `{"codigo":"A-123"}`, captured.body)
	require.Equal(t, "return=minimal", captured.header.Get("Prefer"))
}

func TestUpdate_PatchesFilteredRows(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, http.StatusNoContent, ``, &captured)

	err := c.Update(context.Background(), "sessoes", map[string]any{"ativa": false}, Eq("token", "sess_x"))
	require.NoError(t, err)

	require.Equal(t, http.MethodPatch, captured.method)
	require.Contains(t, captured.query, "token=eq.sess_x")
	require.JSONEq(t, `{"ativa":false}`, captured.body)
}

func TestDo_NonSuccessStatusIsError(t *testing.T) {
	var captured capturedRequest
	c := newTestClient(t, http.StatusUnauthorized, `{"message":"JWT expired"}`, &captured)

	var rows []json.RawMessage
	err := c.Select(context.Background(), "usuarios", Query{}, &rows)
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT expired")
}
