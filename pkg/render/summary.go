package render

import (
	"fmt"
	"io"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/stations"
)

// WriteSummary writes a Markdown overview of a render: one row per map layer
// and the station total of every organization that has stations.
func WriteSummary(w io.Writer, reg *stations.Registry, result *Result) error {
	doc := md.NewMarkdown(w)

	doc.H1("Reference Stations")
	doc.PlainTextf("%d stations with coordinates in %d layers.", result.Stations, len(result.Layers))
	if result.Dropped > 0 {
		doc.LF()
		doc.PlainTextf("%d stations without coordinates are not shown.", result.Dropped)
	}
	doc.LF()

	doc.H2("Layers")
	rows := make([][]string, 0, len(result.Layers))
	for _, l := range result.Layers {
		rows = append(rows, []string{l.Label, l.WorkArea, l.Color, strconv.Itoa(l.Count)})
	}
	doc.Table(md.TableSet{
		Header: []string{"Organization", "Work Area", "Color", "Stations"},
		Rows:   rows,
	})
	doc.LF()

	doc.H2("Organizations")
	totals, order := organizationTotals(result.Layers)
	items := make([]string, 0, len(order))
	for _, code := range order {
		label := constants.UnassignedOrganization
		if code != "" {
			label = reg.LabelFor(&code)
		}
		items = append(items, fmt.Sprintf("%s: %d", label, totals[code]))
	}
	doc.BulletList(items...)

	return doc.Build()
}

// organizationTotals sums layer counts per organization code, keeping the
// layer order.
func organizationTotals(layers []Layer) (map[string]int, []string) {
	totals := make(map[string]int)
	var order []string
	for _, l := range layers {
		if _, ok := totals[l.Organization]; !ok {
			order = append(order, l.Organization)
		}
		totals[l.Organization] += l.Count
	}
	return totals, order
}
