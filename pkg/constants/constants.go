// Package constants provides shared constants used throughout the stationmap codebase.
// This includes timeouts, file permissions, default paths, and the remote API
// layout that should be consistent across the fetch and render commands.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the stations API
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds cleanup work after a command fails
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like cached credentials (rw-------)
	SecureFilePermissions = 0600
)

// Remote API constants
const (
	// DefaultAPIRoot is used when neither a flag nor configuration supplies one
	DefaultAPIRoot = "https://hecate.hakai.org/api"

	// StationsEndpoint is the sites view path relative to the API root
	StationsEndpoint = "eims/views/output/sites"

	// StationsQuery disables server-side pagination so every row is returned
	StationsQuery = "limit=-1"

	// CredentialsFileName is the cached credentials file kept in the user's home directory
	CredentialsFileName = ".hakai-api-auth"
)

// Path constants
const (
	// DefaultStationsCSV is the default location of the fetched stations table
	DefaultStationsCSV = "docs/stations.csv"

	// DefaultBaseDirectory is the default root for rendered pages
	DefaultBaseDirectory = "docs"

	// DefaultRenderOutput is the default sub-path of the base directory for rendered pages
	DefaultRenderOutput = "."

	// IndexFileName is the rendered landing page
	IndexFileName = "index.html"

	// MapFileName is the rendered map page
	MapFileName = "map.html"

	// TableFileName is the rendered table page
	TableFileName = "table.html"

	// SummaryFileName is the optional Markdown summary
	SummaryFileName = "summary.md"
)

// Map constants
const (
	// DefaultMapLatitude is the latitude the map is centered on
	DefaultMapLatitude = 49.5

	// DefaultMapLongitude is the longitude the map is centered on
	DefaultMapLongitude = -125.0

	// DefaultMapZoom is the initial zoom level of the map
	DefaultMapZoom = 6

	// DefaultMarkerColor is used for stations whose organization has no registered color
	DefaultMarkerColor = "gray"

	// UnassignedOrganization labels groups of stations without an organization
	UnassignedOrganization = "UNASSIGNED"
)
