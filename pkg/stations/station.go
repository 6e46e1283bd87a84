// Package stations defines the reference-station record, the organization
// registry used to attribute work areas, and the tabular operations shared by
// the fetch and render pipelines: classification, ordering, grouping and CSV.
package stations

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/stationmap/pkg/errors"
)

// Station is one sampling or reference location.
//
// Organization is derived from the work area through a Registry and is nil
// when the work area has no registered organization. Coordinates and depth are
// nil when the source leaves them empty.
type Station struct {
	Organization *string  `json:"organization"`
	WorkArea     string   `json:"work_area"`
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Depth        *float64 `json:"depth"`
	DepthSource  string   `json:"depth_source"`
	WatershedID  string   `json:"watershed_id"`
	LakeID       string   `json:"lake_id"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (s Station) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// OrganizationCode returns the organization code or an empty string.
func (s Station) OrganizationCode() string {
	if s.Organization == nil {
		return ""
	}
	return *s.Organization
}

// legacyWatershedKey is the column name the sites view historically used.
const legacyWatershedKey = "watershid_id"

// UnmarshalJSON decodes one row of the sites view. String columns accept
// strings, numbers and null; numeric columns accept numbers, numeric strings,
// empty strings and null. Unknown keys are ignored.
func (s *Station) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Station
	var err error

	if v, ok := raw["organization"]; ok {
		org, err := decodeString(v)
		if err != nil {
			return errors.WrapValidation("organization", err)
		}
		if !isNull(v) {
			out.Organization = &org
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"work_area", &out.WorkArea},
		{"name", &out.Name},
		{"depth_source", &out.DepthSource},
		{"lake_id", &out.LakeID},
	}
	for _, f := range strs {
		if *f.dst, err = decodeString(raw[f.key]); err != nil {
			return errors.WrapValidation(f.key, err)
		}
	}

	watershed, ok := raw["watershed_id"]
	if !ok || isNull(watershed) {
		watershed = raw[legacyWatershedKey]
	}
	if out.WatershedID, err = decodeString(watershed); err != nil {
		return errors.WrapValidation("watershed_id", err)
	}

	nums := []struct {
		key string
		dst **float64
	}{
		{"latitude", &out.Latitude},
		{"longitude", &out.Longitude},
		{"depth", &out.Depth},
	}
	for _, f := range nums {
		if *f.dst, err = decodeFloat(raw[f.key]); err != nil {
			return errors.WrapValidation(f.key, err)
		}
	}

	*s = out
	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", errors.New("expected a string or number, got " + string(raw))
	}
}

func decodeFloat(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
		if text == "" {
			return nil, nil
		}
	default:
		return nil, errors.New("expected a number, got " + string(raw))
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	return finite(f, text)
}

// finite treats NaN as a missing value and rejects infinities, so coordinates
// and depths are always real numbers or nil.
func finite(f float64, text string) (*float64, error) {
	switch {
	case math.IsNaN(f):
		return nil, nil
	case math.IsInf(f, 0):
		return nil, errors.New("non-finite number " + text)
	}
	return &f, nil
}
