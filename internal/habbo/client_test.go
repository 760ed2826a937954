package habbo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youiz/dri-portal/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(srv.URL, log)
}

func TestFetchProfile_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/public/users", r.URL.Path)
		require.Equal(t, "youiz", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"name":"youiz","motto":"DRI A-123 o7"}`))
	})

	profile := c.FetchProfile(context.Background(), "youiz")
	require.NotNil(t, profile)
	require.Equal(t, "DRI A-123 o7", profile.Motto)
}

func TestFetchProfile_Non200IsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	require.Nil(t, c.FetchProfile(context.Background(), "ghost"))
}

func TestFetchProfile_TransportFailureIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := NewClient(srv.URL, log)
	srv.Close()

	require.Nil(t, c.FetchProfile(context.Background(), "youiz"))
}

func TestVerifyCodeInMotto(t *testing.T) {
	tests := []struct {
		name  string
		motto string
		code  string
		want  bool
	}{
		{name: "code present", motto: "verificando B-777", code: "B-777", want: true},
		{name: "code absent", motto: "just vibing", code: "B-777", want: false},
		{name: "case sensitive", motto: "b-777", code: "B-777", want: false},
		{name: "code embedded in longer text", motto: "xxB-777yy", code: "B-777", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"name":"n","motto":"` + tc.motto + `"}`))
			})
			require.Equal(t, tc.want, c.VerifyCodeInMotto(context.Background(), "n", tc.code))
		})
	}
}

func TestVerifyCodeInMotto_NoProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	require.False(t, c.VerifyCodeInMotto(context.Background(), "youiz", "A-123"))
}
