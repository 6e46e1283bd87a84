package stations

import (
	"slices"
	"strings"
)

// Sort orders records by organization, work area and name, ascending and
// case-sensitive. Records without an organization sort after every
// organization. The sort is stable so ties keep their input order.
func Sort(records []Station) {
	slices.SortStableFunc(records, Compare)
}

// Compare orders two records by the (organization, work area, name) key.
func Compare(a, b Station) int {
	if c := compareOrganization(a.Organization, b.Organization); c != 0 {
		return c
	}
	if c := strings.Compare(a.WorkArea, b.WorkArea); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

func compareOrganization(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(*a, *b)
	}
}
