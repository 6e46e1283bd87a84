package stations

import (
	"slices"

	"github.com/agentstation/stationmap/internal/utils/ptr"
)

// Classify sets each record's organization from the registry lookup of its
// work area. Records whose work area is not registered get a nil
// organization. The distinct unmapped work areas are returned sorted.
func Classify(records []Station, reg *Registry) []string {
	seen := make(map[string]struct{})
	var unmapped []string

	for i := range records {
		code, ok := reg.OrganizationFor(records[i].WorkArea)
		if !ok {
			records[i].Organization = nil
			if _, dup := seen[records[i].WorkArea]; !dup {
				seen[records[i].WorkArea] = struct{}{}
				unmapped = append(unmapped, records[i].WorkArea)
			}
			continue
		}
		records[i].Organization = ptr.To(code)
	}

	slices.Sort(unmapped)
	return unmapped
}
