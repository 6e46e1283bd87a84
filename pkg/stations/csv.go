package stations

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/stationmap/pkg/errors"
)

// Columns is the CSV header, in order.
var Columns = []string{
	"organization",
	"work_area",
	"name",
	"latitude",
	"longitude",
	"depth",
	"depth_source",
	"watershed_id",
	"lake_id",
}

// Row returns the record's CSV cells in Columns order. Nil values are empty.
func (s Station) Row() []string {
	return []string{
		s.OrganizationCode(),
		s.WorkArea,
		s.Name,
		formatFloat(s.Latitude),
		formatFloat(s.Longitude),
		formatFloat(s.Depth),
		s.DepthSource,
		s.WatershedID,
		s.LakeID,
	}
}

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, records []Station) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return errors.WrapIO("write", "csv header", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return errors.WrapIO("write", "csv row", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSVFile reads a stations CSV from disk. A missing file is a
// NotFoundError.
func ReadCSVFile(path string) ([]Station, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("stations csv", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadCSV(f)
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return records, nil
}

// ReadCSV parses a stations CSV. Columns are matched by header name so extra
// or reordered columns are tolerated; an empty organization cell decodes to a
// nil organization.
func ReadCSV(r io.Reader) ([]Station, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == legacyWatershedKey {
			name = "watershed_id"
		}
		index[name] = i
	}

	var records []Station
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", "", err)
		}

		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := Station{
			WorkArea:    cell("work_area"),
			Name:        cell("name"),
			DepthSource: cell("depth_source"),
			WatershedID: cell("watershed_id"),
			LakeID:      cell("lake_id"),
		}
		if org := cell("organization"); org != "" {
			rec.Organization = &org
		}

		for _, f := range []struct {
			col string
			dst **float64
		}{
			{"latitude", &rec.Latitude},
			{"longitude", &rec.Longitude},
			{"depth", &rec.Depth},
		} {
			v, err := parseFloat(cell(f.col))
			if err != nil {
				return nil, &errors.ParseError{
					Format:  "csv",
					Line:    line,
					Message: "invalid " + f.col + ": " + err.Error(),
					Err:     err,
				}
			}
			*f.dst = v
		}

		records = append(records, rec)
	}

	return records, nil
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func parseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return finite(f, s)
}
