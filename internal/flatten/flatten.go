// Package flatten turns raw sighting events into the denormalized
// row-table the dashboard panels consume.
package flatten

import (
	"time"

	"twiga-dash/internal/metrics"
	"twiga-dash/pkg/models"
)

// TargetEventType is the only event type that feeds the dashboard;
// other types in the category (patrol logs, camera traps) are discarded.
const TargetEventType = "giraffe_nw_monitoring"

// Flatten explodes each event's nested herd list into one row per herd
// member, carrying the parent event's scalar fields on every row. An
// event with an empty or absent herd list still yields exactly one row
// with empty observation fields, so the sighting itself is never lost.
// Rows whose event timestamp does not parse are dropped and counted;
// the second return value is that drop count.
//
// Output order follows input event order, then herd order. The result
// is deterministic for identical input.
func Flatten(events []models.Event) ([]models.FlatRow, int) {
	rows := make([]models.FlatRow, 0, len(events))
	dropped := 0

	for _, evt := range events {
		if evt.EventType != TargetEventType {
			continue
		}

		members := evt.EventDetails.Herd

		ts, err := time.Parse(time.RFC3339, evt.Time)
		if err != nil {
			n := len(members)
			if n == 0 {
				n = 1
			}
			dropped += n
			metrics.DroppedRows.Add(float64(n))
			continue
		}

		base := baseRow(evt, ts)

		if len(members) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, m := range members {
			row := base
			row.GiraffeID = m.GiraffeID
			row.GiraffeAge = m.GiraffeAge
			row.GiraffeSex = m.GiraffeSex
			row.GiraffeGSD = m.GiraffeGSD
			row.GiraffeGSDLoc = m.GiraffeGSDLoc
			row.GiraffeGSDSev = m.GiraffeGSDSev
			row.GiraffeDire = m.GiraffeDire
			row.GiraffeDist = m.GiraffeDist
			row.GiraffeSnare = m.GiraffeSnare
			row.GiraffeRight = m.GiraffeRight
			row.GiraffeLeft = m.GiraffeLeft
			row.GiraffeNotes = m.GiraffeNotes
			rows = append(rows, row)
		}
	}

	return rows, dropped
}

// baseRow maps the event's scalar fields onto the analytic columns.
func baseRow(evt models.Event, ts time.Time) models.FlatRow {
	row := models.FlatRow{
		UserID:      evt.ReportedBy.ID,
		UserName:    evt.ReportedBy.Name,
		EventID:     evt.ID,
		EventType:   evt.EventType,
		Category:    evt.EventCategory,
		Serial:      evt.SerialNumber,
		URL:         evt.URL,
		Time:        ts,
		ImagePrefix: evt.EventDetails.ImagePrefix,
		RiverSystem: evt.EventDetails.RiverSystem,
		HerdDir:     evt.EventDetails.HerdDire,
		HerdDist:    evt.EventDetails.HerdDist,
		HerdSize:    evt.EventDetails.HerdSize,
		HerdNotes:   evt.EventDetails.HerdNotes,
	}

	if evt.Location != nil {
		lat := evt.Location.Latitude
		lon := evt.Location.Longitude
		row.Lat = &lat
		row.Lon = &lon
	}

	return row
}
