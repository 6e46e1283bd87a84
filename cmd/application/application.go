// Package application provides the application interface for stationmap
// commands.
//
// Commands accept the Application interface rather than the concrete App so
// they can be exercised in tests with Mock:
//
//	mock := &application.Mock{
//	    RegistryFunc: func() (*stations.Registry, error) {
//	        return stations.DefaultRegistry()
//	    },
//	}
//	cmd := organizations.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/stationmap/pkg/stations"
)

// Application provides what commands need from the application.
// The App struct from cmd/stationmap/app implements it.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Registry returns the organization registry, loaded once. A registry
	// file from --registry or the config replaces the embedded default.
	Registry() (*stations.Registry, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// APIRoot returns the configured API root, empty when unset.
	APIRoot() string

	// Credentials returns the configured API credentials, empty when unset.
	Credentials() string

	// CredentialsFile returns the cached credentials file path, empty for
	// the default location.
	CredentialsFile() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
