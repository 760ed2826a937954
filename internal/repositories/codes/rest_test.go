package codes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/tablestore"
)

type capturedRequest struct {
	method string
	path   string
	query  string
	body   string
}

func newTestRepo(t *testing.T, status int, respBody string, captured *capturedRequest) *RestRepository {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewRestRepository(tablestore.New(srv.URL, "test-key", log))
}

func TestFindActive_FiltersOutConsumedAndExpired(t *testing.T) {
	var captured capturedRequest
	repo := newTestRepo(t, http.StatusOK,
		`[{"id":"c1","usuario_nick":"Fulano","codigo":"L-123","tipo":"CRIACAO","usado":false}]`,
		&captured)

	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	got, err := repo.FindActive(context.Background(), "Fulano", "L-123", "", now)
	require.NoError(t, err)
	require.Equal(t, "c1", got.ID)
	require.Equal(t, models.PurposeCreation, got.Tipo)

	require.Equal(t, "/"+common.TableCodes, captured.path)
	require.Contains(t, captured.query, "usuario_nick=eq.Fulano")
	require.Contains(t, captured.query, "codigo=eq.L-123")
	require.Contains(t, captured.query, "usado=eq.false")
	require.Contains(t, captured.query, "expira_em=gt.")
	// purpose-agnostic lookup must not constrain tipo
	require.NotContains(t, captured.query, "tipo=")
}

func TestFindActive_PurposeConstrainsTipo(t *testing.T) {
	var captured capturedRequest
	repo := newTestRepo(t, http.StatusOK, `[]`, &captured)

	_, err := repo.FindActive(context.Background(), "Fulano", "R-456",
		models.PurposeReset, time.Now())
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Contains(t, captured.query, "tipo=eq.REDEFINIR")
}

func TestMarkUsed(t *testing.T) {
	var captured capturedRequest
	repo := newTestRepo(t, http.StatusNoContent, ``, &captured)

	require.NoError(t, repo.MarkUsed(context.Background(), "c1"))
	require.Equal(t, http.MethodPatch, captured.method)
	require.Contains(t, captured.query, "id=eq.c1")
	require.Contains(t, captured.body, `"usado":true`)
}

func TestCreate_SendsRow(t *testing.T) {
	var captured capturedRequest
	repo := newTestRepo(t, http.StatusCreated, ``, &captured)

	err := repo.Create(context.Background(), &models.VerificationCode{
		ID: "c1", UsuarioNick: "Fulano", Codigo: "L-123",
		Tipo: models.PurposeCreation, ExpiraEm: time.Now().Add(5 * time.Minute),
	})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, captured.method)
	require.Contains(t, captured.body, `"codigo":"L-123"`)
	require.Contains(t, captured.body, `"tipo":"CRIACAO"`)
}
