// Package stats computes the dashboard panel data from flattened
// sighting rows.
package stats

import (
	"fmt"
	"sort"
	"time"

	"twiga-dash/pkg/models"
)

// Summary holds the headline metrics.
type Summary struct {
	PopulationSize      int    // active roster size
	DistinctIndividuals int    // unique giraffe ids over the full (unfiltered) set
	HerdsSeen           int    // filtered rows carrying a herd size
	AvgHerdSize         string // "%.1f" over filtered rows, or "N/A"
}

// FilterByDate keeps rows whose calendar date falls inside [start, end],
// inclusive on both ends. Comparison is at date granularity in each
// row's own timestamp location, so a row at 23:59:59 on the end date is
// kept.
func FilterByDate(rows []models.FlatRow, start, end time.Time) []models.FlatRow {
	out := make([]models.FlatRow, 0, len(rows))
	s := dateOrdinal(start)
	e := dateOrdinal(end)
	for _, r := range rows {
		d := dateOrdinal(r.Time)
		if d >= s && d <= e {
			out = append(out, r)
		}
	}
	return out
}

func dateOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DateBounds returns the min and max calendar dates present in rows.
// ok is false for an empty set.
func DateBounds(rows []models.FlatRow) (min, max time.Time, ok bool) {
	for _, r := range rows {
		if !ok || r.Time.Before(min) {
			min = r.Time
		}
		if !ok || r.Time.After(max) {
			max = r.Time
		}
		ok = true
	}
	return min, max, ok
}

// Summarize computes the headline metrics. allRows is the full
// flattened set; filtered is the date-filtered subset. The distinct
// individual count runs over allRows on purpose: it is a
// population-level figure independent of the user's viewing window,
// while the herd figures describe the window.
func Summarize(allRows, filtered []models.FlatRow, populationSize int) Summary {
	return Summary{
		PopulationSize:      populationSize,
		DistinctIndividuals: DistinctIndividuals(allRows),
		HerdsSeen:           herdsSeen(filtered),
		AvgHerdSize:         meanHerdSize(filtered),
	}
}

// DistinctIndividuals counts unique non-empty giraffe ids.
func DistinctIndividuals(rows []models.FlatRow) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if r.GiraffeID != "" {
			seen[r.GiraffeID] = struct{}{}
		}
	}
	return len(seen)
}

func herdsSeen(rows []models.FlatRow) int {
	n := 0
	for _, r := range rows {
		if r.HerdSize != nil {
			n++
		}
	}
	return n
}

func meanHerdSize(rows []models.FlatRow) string {
	sum := 0.0
	n := 0
	for _, r := range rows {
		if r.HerdSize != nil {
			sum += *r.HerdSize
			n++
		}
	}
	if n == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", sum/float64(n))
}

// Point is one mappable sighting.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MapPoints returns the rows that carry both coordinates.
func MapPoints(rows []models.FlatRow) []Point {
	pts := make([]Point, 0, len(rows))
	for _, r := range rows {
		if r.Lat != nil && r.Lon != nil {
			pts = append(pts, Point{Lat: *r.Lat, Lon: *r.Lon})
		}
	}
	return pts
}

// MonthCount is the number of sighting rows in one calendar month.
type MonthCount struct {
	Month string `json:"month"` // "2024-07"
	Count int    `json:"count"`
}

// MonthlyCounts groups rows by calendar month, ordered chronologically.
func MonthlyCounts(rows []models.FlatRow) []MonthCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Time.Format("2006-01")]++
	}
	out := make([]MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, MonthCount{Month: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// GroupCount is the number of rows for one (sex, age class) pair.
type GroupCount struct {
	Sex   string `json:"sex"`
	Age   string `json:"age"`
	Count int    `json:"count"`
}

// AgeSexBreakdown groups rows by (sex, age class), sorted by sex then
// age so the chart series order is stable.
func AgeSexBreakdown(rows []models.FlatRow) []GroupCount {
	type key struct{ sex, age string }
	counts := make(map[key]int)
	for _, r := range rows {
		counts[key{r.GiraffeSex, r.GiraffeAge}]++
	}
	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Sex: k.sex, Age: k.age, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sex != out[j].Sex {
			return out[i].Sex < out[j].Sex
		}
		return out[i].Age < out[j].Age
	})
	return out
}

// SeenNames maps the distinct giraffe ids in rows through the lookup
// and returns the matching names, alphabetically sorted. Ids absent
// from the lookup are skipped.
func SeenNames(rows []models.FlatRow, lookup map[string]string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range rows {
		name, ok := lookup[r.GiraffeID]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
