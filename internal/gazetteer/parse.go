package gazetteer

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// fieldCount is the fixed column layout: id, name, state, postcode, lat,
// lng, area, region.
const fieldCount = 8

// parseDataset parses the delimited suburb table. The first line is a
// header and is skipped. Values may be double-quoted to embed commas
// (e.g. "Hunter, Central & Northern NSW"), so rows go through the
// quote-aware splitter rather than a naive comma split.
func parseDataset(content string) ([]Suburb, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return nil, eris.New("gazetteer: dataset has no data rows")
	}

	suburbs := make([]Suburb, 0, len(lines)-1)
	for i, line := range lines[1:] {
		s, err := parseRow(line)
		if err != nil {
			return nil, eris.Wrapf(err, "gazetteer: row %d", i+2)
		}
		suburbs = append(suburbs, s)
	}
	return suburbs, nil
}

func parseRow(line string) (Suburb, error) {
	fields := splitQuoted(line)
	if len(fields) != fieldCount {
		return Suburb{}, eris.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Suburb{}, eris.Wrapf(err, "parse id %q", fields[0])
	}
	lat, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Suburb{}, eris.Wrapf(err, "parse lat %q", fields[4])
	}
	lng, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return Suburb{}, eris.Wrapf(err, "parse lng %q", fields[5])
	}

	return Suburb{
		ID:       id,
		Name:     fields[1],
		State:    fields[2],
		Postcode: fields[3],
		Lat:      lat,
		Lng:      lng,
		Area:     fields[6],
		Region:   fields[7],
	}, nil
}

// splitQuoted splits a comma-separated line, treating commas inside double
// quotes as literal. Quote characters themselves are dropped and each field
// is trimmed.
func splitQuoted(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
