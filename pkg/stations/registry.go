package stations

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/stationmap/internal/embedded"
	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
)

// Organization is one entry of the registry.
type Organization struct {
	Code      string   `yaml:"code" json:"code"`
	Label     string   `yaml:"label" json:"label"`
	Color     string   `yaml:"color" json:"color"`
	WorkAreas []string `yaml:"work_areas" json:"work_areas"`
}

// registryDocument is the on-disk shape of a registry file.
type registryDocument struct {
	Organizations []Organization `yaml:"organizations"`
}

// Registry maps organization codes to their label, color and work areas.
// A Registry is immutable once loaded; the reverse lookup from work area to
// organization is built during loading. Accessors return copies.
type Registry struct {
	orgs       map[string]Organization
	workAreaTo map[string]string
	codes      []string
}

// DefaultRegistry returns the registry embedded in the binary.
func DefaultRegistry() (*Registry, error) {
	data, err := embedded.FS.ReadFile(embedded.RegistryFile)
	if err != nil {
		return nil, errors.WrapResource("load", "registry", embedded.RegistryFile, err)
	}
	return LoadRegistry(bytes.NewReader(data))
}

// LoadRegistryFile loads a registry from a YAML file on disk.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("registry", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	reg, err := LoadRegistry(f)
	if err != nil {
		return nil, errors.NewConfigError("registry", path, err)
	}
	return reg, nil
}

// LoadRegistry parses and validates a YAML registry document.
func LoadRegistry(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "registry", err)
	}

	var doc registryDocument
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.WrapParse("yaml", "registry", err)
	}

	return NewRegistry(doc.Organizations...)
}

// NewRegistry validates the organizations and builds the reverse lookup.
// Organization codes must be unique and non-empty, every organization needs
// a color, and a work area may belong to at most one organization.
func NewRegistry(orgs ...Organization) (*Registry, error) {
	if len(orgs) == 0 {
		return nil, errors.NewValidationError("organizations", nil, "registry has no organizations")
	}

	reg := &Registry{
		orgs:       make(map[string]Organization, len(orgs)),
		workAreaTo: make(map[string]string),
	}

	for _, org := range orgs {
		code := strings.TrimSpace(org.Code)
		if code == "" {
			return nil, errors.NewValidationError("code", org.Label, "organization code cannot be empty")
		}
		if _, dup := reg.orgs[code]; dup {
			return nil, errors.NewValidationError("code", code, "duplicate organization "+code)
		}
		if strings.TrimSpace(org.Color) == "" {
			return nil, errors.NewValidationError("color", code, "organization "+code+" has no color")
		}

		for _, wa := range org.WorkAreas {
			if owner, taken := reg.workAreaTo[wa]; taken {
				return nil, errors.NewValidationError("work_areas", wa,
					"work area "+wa+" assigned to both "+owner+" and "+code)
			}
			reg.workAreaTo[wa] = code
		}

		org.Code = code
		org.WorkAreas = slices.Clone(org.WorkAreas)
		reg.orgs[code] = org
		reg.codes = append(reg.codes, code)
	}

	slices.Sort(reg.codes)
	return reg, nil
}

// OrganizationFor returns the organization code owning a work area.
func (r *Registry) OrganizationFor(workArea string) (string, bool) {
	code, ok := r.workAreaTo[workArea]
	return code, ok
}

// Organization returns a copy of the organization with the given code.
func (r *Registry) Organization(code string) (Organization, bool) {
	org, ok := r.orgs[code]
	if !ok {
		return Organization{}, false
	}
	org.WorkAreas = slices.Clone(org.WorkAreas)
	return org, true
}

// Codes returns the organization codes in ascending order.
func (r *Registry) Codes() []string {
	return slices.Clone(r.codes)
}

// Organizations returns copies of every organization ordered by code.
func (r *Registry) Organizations() []Organization {
	out := make([]Organization, 0, len(r.codes))
	for _, code := range r.codes {
		org, _ := r.Organization(code)
		out = append(out, org)
	}
	return out
}

// ColorFor returns the marker color of an organization, falling back to
// constants.DefaultMarkerColor for nil or unregistered codes.
func (r *Registry) ColorFor(code *string) string {
	if code == nil {
		return constants.DefaultMarkerColor
	}
	if org, ok := r.orgs[*code]; ok {
		return org.Color
	}
	return constants.DefaultMarkerColor
}

// LabelFor returns the display label of an organization, or the code itself
// when it is not registered.
func (r *Registry) LabelFor(code *string) string {
	if code == nil {
		return constants.UnassignedOrganization
	}
	if org, ok := r.orgs[*code]; ok && org.Label != "" {
		return org.Label
	}
	return *code
}
