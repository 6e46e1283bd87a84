package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/stations"
)

const (
	leafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"

	markerClusterCSS        = "https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css"
	markerClusterDefaultCSS = "https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css"
	markerClusterJS         = "https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"

	awesomeMarkersCSS = "https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css"
	awesomeMarkersJS  = "https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"
	glyphiconsCSS     = "https://netdna.bootstrapcdn.com/bootstrap/3.0.0/css/bootstrap-glyphicons.css"
)

// Assets lists the stylesheets and scripts a strategy needs on the map page.
type Assets struct {
	Stylesheets []string
	Scripts     []string
}

// MarkerStrategy decides how a layer's stations are drawn on the map.
//
// LayerScript must define a JavaScript function buildLayer(layer) that takes
// one layer object ({name, color, markers: [{lat, lon, label, popup}]}) and
// returns a Leaflet layer; the map page adds each result to the map and to
// the layer control.
type MarkerStrategy interface {
	Name() string
	Popup(s stations.Station) string
	Assets() Assets
	LayerScript() template.JS
}

// Strategy names accepted by StrategyByName.
const (
	StrategyCircle  = "circle"
	StrategyCluster = "cluster"
)

// StrategyNames returns the registered strategy names in order.
func StrategyNames() []string {
	return []string{StrategyCircle, StrategyCluster}
}

// StrategyByName returns the marker strategy registered under name.
func StrategyByName(name string) (MarkerStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyCircle:
		return CircleStrategy{}, nil
	case StrategyCluster:
		return ClusterStrategy{}, nil
	}
	return nil, errors.NewValidationError("markers", name,
		fmt.Sprintf("unknown marker strategy %q (want one of %s)", name, strings.Join(StrategyNames(), ", ")))
}

// CircleStrategy draws one small filled circle per station, colored by
// organization, with a tooltip and an HTML popup.
type CircleStrategy struct{}

// Name implements MarkerStrategy.
func (CircleStrategy) Name() string { return StrategyCircle }

// Popup implements MarkerStrategy.
func (CircleStrategy) Popup(s stations.Station) string {
	return fmt.Sprintf("<div style='width:100px;'><strong>%s</strong><br>Organization: %s<br>Work Area: %s</div>",
		template.HTMLEscapeString(s.Name),
		template.HTMLEscapeString(s.OrganizationCode()),
		template.HTMLEscapeString(s.WorkArea))
}

// Assets implements MarkerStrategy.
func (CircleStrategy) Assets() Assets {
	return Assets{
		Stylesheets: []string{leafletCSS},
		Scripts:     []string{leafletJS},
	}
}

// LayerScript implements MarkerStrategy.
func (CircleStrategy) LayerScript() template.JS {
	return `function buildLayer(layer) {
    var group = L.featureGroup();
    layer.markers.forEach(function (m) {
      L.circleMarker([m.lat, m.lon], {
        radius: 3,
        color: layer.color,
        stroke: false,
        fill: true,
        fillOpacity: 0.5
      }).bindTooltip(m.label).bindPopup(m.popup).addTo(group);
    });
    return group;
  }`
}

// ClusterStrategy groups each layer's stations into a marker cluster of
// colored pins.
type ClusterStrategy struct{}

// Name implements MarkerStrategy.
func (ClusterStrategy) Name() string { return StrategyCluster }

// Popup implements MarkerStrategy.
func (ClusterStrategy) Popup(s stations.Station) string {
	return "Station: " + template.HTMLEscapeString(s.Name)
}

// Assets implements MarkerStrategy.
func (ClusterStrategy) Assets() Assets {
	circle := CircleStrategy{}.Assets()
	return Assets{
		Stylesheets: append(append([]string{}, circle.Stylesheets...),
			markerClusterCSS, markerClusterDefaultCSS, glyphiconsCSS, awesomeMarkersCSS),
		Scripts: append(append([]string{}, circle.Scripts...), markerClusterJS, awesomeMarkersJS),
	}
}

// LayerScript implements MarkerStrategy.
func (ClusterStrategy) LayerScript() template.JS {
	return `function buildLayer(layer) {
    var group = L.markerClusterGroup();
    layer.markers.forEach(function (m) {
      var icon = L.AwesomeMarkers.icon({icon: "map-marker", markerColor: layer.color});
      var marker = L.marker(new L.LatLng(m.lat, m.lon));
      marker.setIcon(icon);
      marker.bindPopup(m.popup);
      group.addLayer(marker);
    });
    return group;
  }`
}
