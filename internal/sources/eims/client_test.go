package eims

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stationmap/internal/transport"
	"github.com/agentstation/stationmap/pkg/errors"
)

func TestStationsURL(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"https://hecate.hakai.org/api", "https://hecate.hakai.org/api/eims/views/output/sites?limit=-1"},
		{"https://hecate.hakai.org/api/", "https://hecate.hakai.org/api/eims/views/output/sites?limit=-1"},
		{"http://localhost:8000/api//", "http://localhost:8000/api/eims/views/output/sites?limit=-1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StationsURL(tt.root), tt.root)
	}

	assert.Equal(t, "https://hecate.hakai.org/api/eims/views/output/sites?limit=-1",
		NewClient("", nil, nil).StationsURL())
}

func TestStations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eims/views/output/sites", r.URL.Path)
		assert.Equal(t, "-1", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"work_area": "CALVERT", "name": "Pruth", "latitude": 51.65, "longitude": -128.08},
			{"work_area": "SKEENA", "name": "S1", "latitude": null, "longitude": -129.9}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", &transport.Credentials{AccessToken: "tok"}, server.Client())
	records, err := client.Stations(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Pruth", records[0].Name)
	assert.Nil(t, records[1].Latitude)
}

func TestStationsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "bad token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil, server.Client()).Stations(context.Background())
	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, errors.IsCredentialsError(err))
}
