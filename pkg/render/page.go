package render

import (
	"html/template"
	"path/filepath"

	"github.com/agentstation/stationmap/pkg/stations"
)

// page is the data every template receives.
type page struct {
	Title       string
	Page        string
	Nav         Navigation
	Stylesheets []string
	Scripts     []string

	// index
	Stations int
	Layers   []Layer

	// map
	Center      LatLng
	Zoom        int
	LayerScript template.JS
	Markers     []markerLayer

	// table
	Table table
}

// Navigation is the context shared by the page header.
type Navigation struct {
	BaseDirectory string
	Output        string
	CSV           string // CSV href relative to the pages, empty when not reachable
}

// markerLayer is the JSON shape buildLayer receives.
type markerLayer struct {
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Markers []marker `json:"markers"`
}

type marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
	Popup string  `json:"popup"`
}

type table struct {
	Columns []string
	Rows    [][]string
}

func newTable(records []stations.Station) table {
	t := table{Columns: stations.Columns, Rows: make([][]string, 0, len(records))}
	for _, rec := range records {
		t.Rows = append(t.Rows, rec.Row())
	}
	return t
}

func (r *Renderer) navigation(csvPath string) Navigation {
	nav := Navigation{
		BaseDirectory: filepath.ToSlash(r.baseDirectory),
		Output:        filepath.ToSlash(r.output),
	}

	dir, err := filepath.Abs(r.Directory())
	if err != nil {
		return nav
	}
	csvAbs, err := filepath.Abs(csvPath)
	if err != nil {
		return nav
	}
	if rel, err := filepath.Rel(dir, csvAbs); err == nil {
		nav.CSV = filepath.ToSlash(rel)
	}
	return nav
}
