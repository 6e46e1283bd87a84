package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/stationmap/pkg/stations"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	RegistryFunc        func() (*stations.Registry, error)
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	APIRootFunc         func() string
	CredentialsFunc     func() string
	CredentialsFileFunc func() string
	VersionFunc         func() string
	CommitFunc          func() string
	DateFunc            func() string
	BuiltByFunc         func() string
}

var _ Application = (*Mock)(nil)

// Registry returns the registry from the mock function or the embedded default.
func (m *Mock) Registry() (*stations.Registry, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc()
	}
	return stations.DefaultRegistry()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// APIRoot returns the API root using the mock function or "".
func (m *Mock) APIRoot() string {
	if m.APIRootFunc != nil {
		return m.APIRootFunc()
	}
	return ""
}

// Credentials returns credentials using the mock function or "".
func (m *Mock) Credentials() string {
	if m.CredentialsFunc != nil {
		return m.CredentialsFunc()
	}
	return ""
}

// CredentialsFile returns the credentials file using the mock function or "".
func (m *Mock) CredentialsFile() string {
	if m.CredentialsFileFunc != nil {
		return m.CredentialsFileFunc()
	}
	return ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
