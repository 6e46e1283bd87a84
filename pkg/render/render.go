// Package render turns a stations CSV into the static site: an index page,
// a Leaflet map with one toggleable layer per (organization, work area)
// group, and a table of every station that has coordinates.
package render

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/stationmap/internal/embedded"
	"github.com/agentstation/stationmap/internal/utils/atomicfile"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/logging"
	"github.com/agentstation/stationmap/pkg/stations"
)

// LatLng is a map position in decimal degrees.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// Layer describes one map overlay.
type Layer struct {
	Name         string `json:"name"`         // "<organization>: <work area>"
	Organization string `json:"organization"` // registry code, empty when unassigned
	Label        string `json:"label"`        // registry label, or UNASSIGNED
	WorkArea     string `json:"work_area"`
	Color        string `json:"color"`
	Count        int    `json:"count"`
}

// Result reports what a render produced.
type Result struct {
	Directory string
	Files     []string
	Stations  int // rows with coordinates
	Dropped   int // rows skipped for missing coordinates
	Layers    []Layer
}

// Renderer writes the site pages for a stations CSV.
type Renderer struct {
	registry      *stations.Registry
	baseDirectory string
	output        string
	strategy      MarkerStrategy
	center        LatLng
	zoom          int
	summary       bool
	logger        *zerolog.Logger
	templates     *template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBaseDirectory sets the directory the site is written under.
func WithBaseDirectory(dir string) Option {
	return func(r *Renderer) { r.baseDirectory = dir }
}

// WithOutput sets the sub-path below the base directory.
func WithOutput(output string) Option {
	return func(r *Renderer) { r.output = output }
}

// WithStrategy sets the marker strategy. Nil keeps the default.
func WithStrategy(s MarkerStrategy) Option {
	return func(r *Renderer) {
		if s != nil {
			r.strategy = s
		}
	}
}

// WithCenter sets the initial map center.
func WithCenter(center LatLng) Option {
	return func(r *Renderer) { r.center = center }
}

// WithZoom sets the initial map zoom level.
func WithZoom(zoom int) Option {
	return func(r *Renderer) { r.zoom = zoom }
}

// WithSummary enables writing summary.md next to the pages.
func WithSummary(enabled bool) Option {
	return func(r *Renderer) { r.summary = enabled }
}

// WithLogger sets the logger. Without it the context logger is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// New creates a Renderer for the given registry.
func New(reg *stations.Registry, opts ...Option) (*Renderer, error) {
	if reg == nil {
		return nil, errors.NewValidationError("registry", nil, "registry is required")
	}

	tmpl, err := template.New("pages").ParseFS(embedded.FS, embedded.TemplatesGlob)
	if err != nil {
		return nil, errors.WrapResource("load", "templates", embedded.TemplatesGlob, err)
	}

	r := &Renderer{
		registry:      reg,
		baseDirectory: constants.DefaultBaseDirectory,
		output:        constants.DefaultRenderOutput,
		strategy:      CircleStrategy{},
		center:        LatLng{Latitude: constants.DefaultMapLatitude, Longitude: constants.DefaultMapLongitude},
		zoom:          constants.DefaultMapZoom,
		templates:     tmpl,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Directory returns the directory the pages are written to.
func (r *Renderer) Directory() string {
	return filepath.Join(r.baseDirectory, r.output)
}

// Render reads csvPath and writes the pages. The CSV is read before anything
// is created on disk so a missing input leaves no partial output.
func (r *Renderer) Render(ctx context.Context, csvPath string) (*Result, error) {
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	ctx = logging.WithLogger(ctx, logger)

	records, err := stations.ReadCSVFile(csvPath)
	if err != nil {
		return nil, err
	}

	located := stations.WithCoordinates(records)
	groups := stations.GroupBy(located)
	dropped := len(records) - len(located)
	if dropped > 0 {
		logger.Debug().Int("dropped", dropped).Msg("Skipping stations without coordinates")
	}

	dir := r.Directory()
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	layers, markers := r.buildLayers(ctx, groups)
	nav := r.navigation(csvPath)

	result := &Result{
		Directory: dir,
		Stations:  len(located),
		Dropped:   dropped,
		Layers:    layers,
	}

	pages := []struct {
		file string
		data page
	}{
		{constants.IndexFileName, page{
			Title: "Reference Stations", Page: "index", Nav: nav,
			Stations: len(located), Layers: layers,
		}},
		{constants.MapFileName, page{
			Title: "Reference Stations Map", Page: "map", Nav: nav,
			Stylesheets: r.strategy.Assets().Stylesheets,
			Scripts:     r.strategy.Assets().Scripts,
			Center:      r.center,
			Zoom:        r.zoom,
			LayerScript: r.strategy.LayerScript(),
			Markers:     markers,
		}},
		{constants.TableFileName, page{
			Title: "Reference Stations Table", Page: "table", Nav: nav,
			Table: newTable(located),
		}},
	}

	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, p.file)
		if err := r.writePage(path, p.file, p.data); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	if r.summary {
		path := filepath.Join(dir, constants.SummaryFileName)
		if err := atomicfile.Write(path, func(w io.Writer) error {
			return WriteSummary(w, r.registry, result)
		}); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	logger.Info().
		Str("directory", dir).
		Str("markers", r.strategy.Name()).
		Int("stations", result.Stations).
		Int("layers", len(layers)).
		Msg("Rendered station pages")

	return result, nil
}

func (r *Renderer) writePage(path, name string, data page) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.WrapResource("render", "page", name, err)
	}
	return atomicfile.WriteFile(path, buf.Bytes())
}

// BuildLayers describes the map overlay of every group, in group order.
func BuildLayers(reg *stations.Registry, groups []stations.Group) []Layer {
	layers := make([]Layer, 0, len(groups))
	for _, g := range groups {
		code, workArea := g.Key()
		name := constants.UnassignedOrganization
		if g.Organization != nil {
			name = code
		}
		layers = append(layers, Layer{
			Name:         name + ": " + workArea,
			Organization: code,
			Label:        reg.LabelFor(g.Organization),
			WorkArea:     workArea,
			Color:        reg.ColorFor(g.Organization),
			Count:        len(g.Stations),
		})
	}
	return layers
}

func (r *Renderer) buildLayers(ctx context.Context, groups []stations.Group) ([]Layer, []markerLayer) {
	layers := BuildLayers(r.registry, groups)
	markers := make([]markerLayer, 0, len(groups))

	for i, g := range groups {
		layerCtx := logging.WithWorkArea(logging.WithOrganization(ctx, layers[i].Organization), layers[i].WorkArea)
		logging.FromContext(layerCtx).Debug().
			Str("color", layers[i].Color).
			Int("stations", len(g.Stations)).
			Msg("Adding map layer")

		ml := markerLayer{Name: template.HTMLEscapeString(layers[i].Name), Color: layers[i].Color, Markers: make([]marker, 0, len(g.Stations))}
		for _, s := range g.Stations {
			ml.Markers = append(ml.Markers, marker{
				Lat:   *s.Latitude,
				Lon:   *s.Longitude,
				Label: template.HTMLEscapeString(s.Name),
				Popup: r.strategy.Popup(s),
			})
		}
		markers = append(markers, ml)
	}
	return layers, markers
}
