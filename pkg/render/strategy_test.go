package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stationmap/internal/utils/ptr"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/render"
	"github.com/agentstation/stationmap/pkg/stations"
)

func TestStrategyByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "circle"},
		{"circle", "circle"},
		{"Cluster", "cluster"},
		{" cluster ", "cluster"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := render.StrategyByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name())
		})
	}

	_, err := render.StrategyByName("heatmap")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "circle, cluster")
}

func TestPopups(t *testing.T) {
	s := stations.Station{Organization: ptr.String("HAKAI"), WorkArea: "CALVERT", Name: "Pruth"}

	assert.Equal(t,
		"<div style='width:100px;'><strong>Pruth</strong><br>Organization: HAKAI<br>Work Area: CALVERT</div>",
		render.CircleStrategy{}.Popup(s))
	assert.Equal(t, "Station: Pruth", render.ClusterStrategy{}.Popup(s))

	s.Name = "A<B"
	assert.Contains(t, render.CircleStrategy{}.Popup(s), "A&lt;B")
	assert.Equal(t, "Station: A&lt;B", render.ClusterStrategy{}.Popup(s))
}

func TestStrategyAssets(t *testing.T) {
	circle := render.CircleStrategy{}.Assets()
	cluster := render.ClusterStrategy{}.Assets()

	assert.Len(t, circle.Scripts, 1)
	assert.Subset(t, cluster.Scripts, circle.Scripts)
	assert.Greater(t, len(cluster.Stylesheets), len(circle.Stylesheets))
}
