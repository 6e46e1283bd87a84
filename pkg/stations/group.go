package stations

import (
	"slices"
	"strings"

	"github.com/agentstation/stationmap/internal/utils/ptr"
)

// Group is the set of stations sharing an (organization, work area) key.
type Group struct {
	Organization *string
	WorkArea     string
	Stations     []Station
}

// Key returns the organization code and work area of the group.
func (g Group) Key() (string, string) {
	if g.Organization == nil {
		return "", g.WorkArea
	}
	return *g.Organization, g.WorkArea
}

// WithCoordinates returns the records that have both latitude and longitude,
// preserving order.
func WithCoordinates(records []Station) []Station {
	out := make([]Station, 0, len(records))
	for _, rec := range records {
		if rec.HasCoordinates() {
			out = append(out, rec)
		}
	}
	return out
}

// GroupBy partitions records by (organization, work area). Groups are ordered
// lexicographically on the pair with nil organizations last; stations keep
// their input order within a group.
func GroupBy(records []Station) []Group {
	type key struct {
		assigned bool
		org      string
		workArea string
	}

	index := make(map[key]int)
	var groups []Group
	for _, rec := range records {
		k := key{assigned: rec.Organization != nil, org: rec.OrganizationCode(), workArea: rec.WorkArea}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Organization: ptr.Clone(rec.Organization), WorkArea: rec.WorkArea})
		}
		groups[i].Stations = append(groups[i].Stations, rec)
	}

	slices.SortFunc(groups, compareGroups)
	return groups
}

func compareGroups(a, b Group) int {
	if c := compareOrganization(a.Organization, b.Organization); c != 0 {
		return c
	}
	return strings.Compare(a.WorkArea, b.WorkArea)
}
