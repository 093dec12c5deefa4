// Package shiplog serializes ship logs to the semicolon delimited exchange
// format and computes voyage statistics over them.
package shiplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/physics"
)

var header = []string{
	"timestamp",
	"coordinates_initial",
	"coordinates_current",
	"coordinates_final",
	"cargo_on_board",
	"velocity",
	"course",
	"heading",
	"true_bearing",
	"draft",
	"navigation_status",
}

// Write emits one record per log entry. Coordinates are "lat,lon" decimal
// degrees, velocity is "speed,angle" in m/s and degrees from north.
func Write(w io.Writer, log boat.ShipLog) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range log {
		record := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.CoordinatesInitial.String(),
			e.CoordinatesCurrent.String(),
			e.CoordinatesFinal.String(),
			strconv.FormatFloat(e.CargoOnBoard, 'f', -1, 64),
			fmt.Sprintf("%.4f,%.4f", e.Velocity.Magnitude, e.Velocity.Angle),
			strconv.FormatFloat(e.Course, 'f', 4, 64),
			strconv.FormatFloat(e.Heading, 'f', 4, 64),
			strconv.FormatFloat(e.TrueBearing, 'f', 4, 64),
			strconv.FormatFloat(e.Draft, 'f', -1, 64),
			strconv.Itoa(int(e.Status)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read parses a log written by Write. A header record is skipped.
func Read(r io.Reader) (boat.ShipLog, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = len(header)

	var log boat.ShipLog
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("shiplog: %w", err)
		}
		if first {
			first = false
			if record[0] == header[0] {
				continue
			}
		}

		e, err := parseEntry(record)
		if err != nil {
			return nil, fmt.Errorf("shiplog: record %d: %w", len(log)+1, err)
		}
		log = append(log, e)
	}
	return log, nil
}

func parseEntry(record []string) (boat.LogEntry, error) {
	var e boat.LogEntry
	var err error

	if e.Timestamp, err = time.Parse(time.RFC3339, record[0]); err != nil {
		return e, err
	}
	if e.CoordinatesInitial, err = latlon.Parse(record[1]); err != nil {
		return e, err
	}
	if e.CoordinatesCurrent, err = latlon.Parse(record[2]); err != nil {
		return e, err
	}
	if e.CoordinatesFinal, err = latlon.Parse(record[3]); err != nil {
		return e, err
	}
	if e.CargoOnBoard, err = strconv.ParseFloat(record[4], 64); err != nil {
		return e, err
	}

	var speed, angle float64
	if _, err = fmt.Sscanf(record[5], "%f,%f", &speed, &angle); err != nil {
		return e, fmt.Errorf("invalid velocity '%s'", record[5])
	}
	e.Velocity = physics.New(speed, angle)

	if e.Course, err = strconv.ParseFloat(record[6], 64); err != nil {
		return e, err
	}
	if e.Heading, err = strconv.ParseFloat(record[7], 64); err != nil {
		return e, err
	}
	if e.TrueBearing, err = strconv.ParseFloat(record[8], 64); err != nil {
		return e, err
	}
	if e.Draft, err = strconv.ParseFloat(record[9], 64); err != nil {
		return e, err
	}
	status, err := strconv.Atoi(record[10])
	if err != nil {
		return e, err
	}
	e.Status = boat.NavigationStatus(status)

	return e, nil
}
