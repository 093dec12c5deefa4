package route

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/a-bouts/sim-server/latlon"
)

// Parse reads a semicolon delimited plan with columns
// p1_lat;p1_lon;p2_lat;p2_lon;tacking_width;min_proximity.
// A non-numeric first record is treated as a header and skipped.
func Parse(r io.Reader) (Plan, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 6

	var plan Plan
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("route: %w", err)
		}
		if first {
			first = false
			if _, err := strconv.ParseFloat(record[0], 64); err != nil {
				continue
			}
		}

		leg, err := parseLeg(record)
		if err != nil {
			return nil, fmt.Errorf("route: record %d: %w", len(plan)+1, err)
		}
		plan = append(plan, leg)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Load reads a plan from a CSV file.
func Load(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func parseLeg(record []string) (Leg, error) {
	var fields [6]float64
	for i, v := range record {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Leg{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		fields[i] = f
	}
	return Leg{
		P1:           latlon.New(fields[0], fields[1]),
		P2:           latlon.New(fields[2], fields[3]),
		TackingWidth: fields[4],
		MinProximity: fields[5],
	}, nil
}
