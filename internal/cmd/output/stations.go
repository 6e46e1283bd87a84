package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/render"
	"github.com/agentstation/stationmap/pkg/stations"
)

// StationsToData converts station records to table format. The wide variant
// carries every CSV column.
func StationsToData(records []stations.Station, wide bool) Data {
	if wide {
		rows := make([][]string, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.Row())
		}
		headers := make([]string, len(stations.Columns))
		for i, c := range stations.Columns {
			headers[i] = strings.ToUpper(strings.ReplaceAll(c, "_", " "))
		}
		return Data{Headers: headers, Rows: rows}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		org := rec.OrganizationCode()
		if rec.Organization == nil {
			org = constants.UnassignedOrganization
		}
		row := rec.Row()
		rows = append(rows, []string{org, rec.WorkArea, rec.Name, row[3], row[4]})
	}
	return Data{
		Headers:         []string{"Organization", "Work Area", "Name", "Latitude", "Longitude"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight},
	}
}

// LayersToData converts map layers to table format.
func LayersToData(layers []render.Layer) Data {
	rows := make([][]string, 0, len(layers))
	for _, l := range layers {
		rows = append(rows, []string{l.Name, l.Label, l.Color, strconv.Itoa(l.Count)})
	}
	return Data{
		Headers:         []string{"Layer", "Organization", "Color", "Stations"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
}

// OrganizationsToData converts registry organizations to table format.
func OrganizationsToData(orgs []stations.Organization) Data {
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []string{o.Code, o.Label, o.Color, strings.Join(o.WorkAreas, ", ")})
	}
	return Data{
		Headers: []string{"Code", "Label", "Color", "Work Areas"},
		Rows:    rows,
	}
}
