package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stationmap/cmd/application"
	"github.com/agentstation/stationmap/pkg/errors"
	pkgfetch "github.com/agentstation/stationmap/pkg/fetch"
)

const sites = `[
	{"work_area": "SKEENA", "name": "Kitwanga", "latitude": 55.1, "longitude": -128.0},
	{"work_area": "CALVERT", "name": "Pruth", "latitude": 51.65, "longitude": -128.08},
	{"work_area": "MARS", "name": "Olympus"}
]`

func TestFetchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/eims/views/output/sites", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(sites))
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "out", "stations.csv")
	app := &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		APIRootFunc:      func() string { return server.URL + "/api" },
	}

	cmd := NewCommand(app, pkgfetch.WithHTTPClient(server.Client()))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--credentials", "secret", "--output", outPath})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var summary Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, outPath, summary.Output)
	assert.Equal(t, server.URL+"/api/eims/views/output/sites?limit=-1", summary.URL)
	assert.Equal(t, 3, summary.Stations)
	assert.Equal(t, []string{"MARS"}, summary.Unmapped)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t,
		"organization,work_area,name,latitude,longitude,depth,depth_source,watershed_id,lake_id\n"+
			"HAKAI,CALVERT,Pruth,51.65,-128.08,,,,\n"+
			"SFC,SKEENA,Kitwanga,55.1,-128,,,,\n"+
			",MARS,Olympus,,,,,,\n",
		string(data))
}

func TestFetchCommandTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "stations.csv")
	cmd := NewCommand(&application.Mock{}, pkgfetch.WithHTTPClient(server.Client()))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--api_root", server.URL, "--credentials", "secret", "--output", outPath})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, strings.ToUpper(out.String()), "STATIONS")
	assert.Contains(t, out.String(), outPath)
	assert.FileExists(t, outPath)
}

func TestFetchCommandServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	outPath := filepath.Join(t.TempDir(), "stations.csv")
	cmd := NewCommand(&application.Mock{}, pkgfetch.WithHTTPClient(server.Client()))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--api_root", server.URL, "--credentials", "secret", "--output", outPath})

	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsUnavailable(err))
	assert.ErrorContains(t, err, "try again later")
	assert.NoFileExists(t, outPath)
}

func TestFetchCommandMissingCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected without credentials")
	}))
	defer server.Close()

	authFile := filepath.Join(t.TempDir(), ".hakai-api-auth")
	app := &application.Mock{CredentialsFileFunc: func() string { return authFile }}
	cmd := NewCommand(app, pkgfetch.WithHTTPClient(server.Client()))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--api_root", server.URL, "--output", filepath.Join(t.TempDir(), "stations.csv")})

	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsCredentialsError(err))
	assert.ErrorContains(t, err, "--credentials")
	assert.ErrorContains(t, err, authFile)
}
