package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
)

// Header is the dataset column order. The names follow the dataset files
// the operations team already keeps.
var Header = []string{"ihbar", "olay_turu", "oncelik", "birim", "ilce", "mahalle", "lat", "lon"}

const bom = "\ufeff"

// WriteCSV writes records with a UTF-8 byte order mark and a header row.
func WriteCSV(w io.Writer, records []Record) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Text,
			r.EventType.String(),
			r.Priority.String(),
			r.Unit.String(),
			r.District,
			r.Neighborhood,
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
			strconv.FormatFloat(r.Lon, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a labeled dataset. Only the ihbar and olay_turu columns are
// required; ihbar_metni is accepted as an alias for ihbar.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, bom))] = i
	}
	if _, ok := index["ihbar"]; !ok {
		if i, alias := index["ihbar_metni"]; alias {
			index["ihbar"] = i
		}
	}
	for _, col := range []string{"ihbar", "olay_turu"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRecord(index, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
}

func parseRecord(index map[string]int, row []string) (Record, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Text:         get("ihbar"),
		District:     get("ilce"),
		Neighborhood: get("mahalle"),
	}

	var err error
	if rec.EventType, err = domain.ParseEventType(get("olay_turu")); err != nil {
		return Record{}, err
	}
	if p := get("oncelik"); p != "" {
		if rec.Priority, err = domain.ParsePriority(p); err != nil {
			return Record{}, err
		}
	}
	if u := get("birim"); u != "" {
		if rec.Unit, err = domain.ParseUnit(u); err != nil {
			return Record{}, err
		}
	}
	if v := get("lat"); v != "" {
		if rec.Lat, err = strconv.ParseFloat(v, 64); err != nil {
			return Record{}, fmt.Errorf("lat: %w", err)
		}
	}
	if v := get("lon"); v != "" {
		if rec.Lon, err = strconv.ParseFloat(v, 64); err != nil {
			return Record{}, fmt.Errorf("lon: %w", err)
		}
	}
	return rec, nil
}
