package render_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/logging"
	"github.com/agentstation/stationmap/pkg/render"
	"github.com/agentstation/stationmap/pkg/stations"
)

const sampleCSV = `organization,work_area,name,latitude,longitude,depth,depth_source,watershed_id,lake_id
HAKAI,CALVERT,Pruth,51.65,-128.08,12,chart,,
HAKAI,CALVERT,NoLat,,-128.1,,,,
HAKAI,QUADRA,QU39,50.03,-125.1,270,,,
SFC,SKEENA,<Skeena & Co>,54.2,-129.9,,,,
,MARS,Olympus,10,20,,,,
`

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "stations.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newRenderer(t *testing.T, base string, opts ...render.Option) *render.Renderer {
	t.Helper()
	reg, err := stations.DefaultRegistry()
	require.NoError(t, err)

	opts = append([]render.Option{
		render.WithBaseDirectory(base),
		render.WithOutput("."),
		render.WithLogger(logging.NewNopLogger()),
	}, opts...)
	r, err := render.New(reg, opts...)
	require.NoError(t, err)
	return r
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)

	result, err := newRenderer(t, base).Render(context.Background(), csvPath)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stations)
	assert.Equal(t, 1, result.Dropped)
	require.Len(t, result.Files, 3)
	for _, name := range []string{"index.html", "map.html", "table.html"} {
		assert.FileExists(t, filepath.Join(base, name))
	}

	var names []string
	for _, l := range result.Layers {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"HAKAI: CALVERT", "HAKAI: QUADRA", "SFC: SKEENA", "UNASSIGNED: MARS"}, names)

	calvert := result.Layers[0]
	assert.Equal(t, "HAKAI", calvert.Organization)
	assert.Equal(t, "red", calvert.Color)
	assert.Equal(t, 1, calvert.Count)
	assert.Equal(t, "gray", result.Layers[3].Color)
}

func TestRenderMapPage(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)

	_, err := newRenderer(t, base).Render(context.Background(), csvPath)
	require.NoError(t, err)

	page := readFile(t, filepath.Join(base, "map.html"))
	assert.Contains(t, page, `"name":"HAKAI: CALVERT"`)
	assert.Contains(t, page, `"color":"red"`)
	assert.Contains(t, page, `"color":"gray"`)
	assert.Contains(t, page, "L.circleMarker")
	assert.Contains(t, page, "L.control.layers(null, overlays)")
	assert.Contains(t, page, "leaflet@1.9.4/dist/leaflet.js")
	assert.Contains(t, page, "49.5")
	assert.NotContains(t, page, "NoLat")
	assert.NotContains(t, page, "<Skeena", "station names are escaped")
	assert.Contains(t, page, "Pruth")
}

func TestRenderMapEscapesLayerNames(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, strings.Join(stations.Columns, ",")+"\n"+
		",<b>REEF</b>,Reef One,49.1,-124.2,,,,\n")

	result, err := newRenderer(t, base).Render(context.Background(), csvPath)
	require.NoError(t, err)
	require.Len(t, result.Layers, 1)
	assert.Equal(t, "UNASSIGNED: <b>REEF</b>", result.Layers[0].Name)

	page := readFile(t, filepath.Join(base, "map.html"))
	assert.Contains(t, page, `"name":"UNASSIGNED: \u0026lt;b\u0026gt;REEF\u0026lt;/b\u0026gt;"`)
	assert.NotContains(t, page, "<b>REEF")
	assert.NotContains(t, page, `\u003cb\u003eREEF`)
}

func TestRenderLogsLayers(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)
	logger := logging.NewTestLogger(t)

	_, err := newRenderer(t, base, render.WithLogger(logger.Logger)).Render(context.Background(), csvPath)
	require.NoError(t, err)

	var layerLines []string
	for _, line := range logger.Lines() {
		if strings.Contains(line, "Adding map layer") {
			layerLines = append(layerLines, line)
		}
	}
	require.Len(t, layerLines, 4)
	assert.Contains(t, layerLines[0], `"organization":"HAKAI"`)
	assert.Contains(t, layerLines[0], `"work_area":"CALVERT"`)
	assert.Contains(t, layerLines[3], `"organization":""`)
	assert.Contains(t, layerLines[3], `"work_area":"MARS"`)
	assert.Contains(t, layerLines[3], `"color":"gray"`)
}

func TestRenderTablePage(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)

	_, err := newRenderer(t, base).Render(context.Background(), csvPath)
	require.NoError(t, err)

	page := readFile(t, filepath.Join(base, "table.html"))
	assert.Contains(t, page, `<table border="1" class="dataframe table table-striped table-hover table-sm" id="stations-table">`)
	assert.Contains(t, page, "<th>organization</th>")
	assert.Contains(t, page, "<th>lake_id</th>")
	assert.Contains(t, page, "<td>Pruth</td>")
	assert.Contains(t, page, "<td>&lt;Skeena &amp; Co&gt;</td>")
	assert.NotContains(t, page, "NoLat")
	assert.Equal(t, 4, strings.Count(page, "<tr>"), "one row per located station")
	assert.Contains(t, page, `href="stations.csv"`)
}

func TestRenderIsDeterministic(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)
	r := newRenderer(t, base, render.WithSummary(true))

	_, err := r.Render(context.Background(), csvPath)
	require.NoError(t, err)
	first := map[string]string{}
	for _, name := range []string{"index.html", "map.html", "table.html", "summary.md"} {
		first[name] = readFile(t, filepath.Join(base, name))
	}

	_, err = r.Render(context.Background(), csvPath)
	require.NoError(t, err)
	for name, want := range first {
		assert.Equal(t, want, readFile(t, filepath.Join(base, name)), name)
	}
}

func TestRenderMissingCSV(t *testing.T) {
	base := filepath.Join(t.TempDir(), "site")

	_, err := newRenderer(t, base, render.WithOutput("maps")).Render(context.Background(), filepath.Join(base, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, statErr := os.Stat(base)
	assert.True(t, os.IsNotExist(statErr), "no output directory is created")
}

func TestRenderOutputSubdirectory(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)

	result, err := newRenderer(t, base, render.WithOutput("nested/site")).Render(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "nested", "site"), result.Directory)

	index := readFile(t, filepath.Join(base, "nested", "site", "index.html"))
	assert.Contains(t, index, `href="map.html"`)
	assert.Contains(t, index, `href="table.html"`)
	assert.Contains(t, index, `href="../../stations.csv"`)
	assert.Contains(t, index, `data-output="nested/site"`)
}

func TestRenderClusterStrategy(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)

	_, err := newRenderer(t, base, render.WithStrategy(render.ClusterStrategy{})).Render(context.Background(), csvPath)
	require.NoError(t, err)

	page := readFile(t, filepath.Join(base, "map.html"))
	assert.Contains(t, page, "L.markerClusterGroup()")
	assert.Contains(t, page, `L.AwesomeMarkers.icon({icon: "map-marker", markerColor: layer.color})`)
	assert.Contains(t, page, "leaflet.markercluster.js")
	assert.Contains(t, page, "Station: Pruth")
	assert.Contains(t, page, "L.control.layers(null, overlays)")
	assert.NotContains(t, page, "L.circleMarker")
}

func TestRenderEmptyCSV(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, strings.Join(stations.Columns, ",")+"\n")

	result, err := newRenderer(t, base).Render(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Zero(t, result.Stations)
	assert.Empty(t, result.Layers)
	assert.Contains(t, readFile(t, filepath.Join(base, "map.html")), "[]")
}

func TestRenderCancelled(t *testing.T) {
	base := t.TempDir()
	csvPath := writeCSV(t, base, sampleCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRenderer(t, base).Render(ctx, csvPath)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRequiresRegistry(t *testing.T) {
	_, err := render.New(nil)
	assert.True(t, errors.IsValidationError(err))
}
