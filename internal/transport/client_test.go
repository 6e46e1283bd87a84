package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/logging"
)

func TestClientGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := New(&Credentials{AccessToken: "tok"}, server.Client())
	var got struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, client.GetJSON(context.Background(), server.URL, &got))
	assert.True(t, got.OK)
}

func TestClientStatusErrors(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusUnauthorized, errors.ErrUnauthorized},
		{http.StatusForbidden, errors.ErrUnauthorized},
		{http.StatusNotFound, errors.ErrNotFound},
		{http.StatusBadGateway, errors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			var target any
			err := New(nil, server.Client()).GetJSON(context.Background(), server.URL, &target)

			var apiErr *errors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, server.URL, apiErr.Endpoint)
			assert.Contains(t, apiErr.Message, "nope")
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestClientMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name": `))
	}))
	defer server.Close()

	var target []map[string]any
	err := New(nil, server.Client()).GetJSON(context.Background(), server.URL, &target)
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "json", pe.Format)
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(nil, nil).Get(context.Background(), url)
	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, apiErr.StatusCode)
}

func TestDecodeResponseAccepts2xx(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusCreated)
	_, _ = rec.WriteString(`[1,2]`)

	var got []int
	require.NoError(t, DecodeResponse(logging.NewNopLogger(), rec.Result(), "test", &got))
	assert.Equal(t, []int{1, 2}, got)
}
