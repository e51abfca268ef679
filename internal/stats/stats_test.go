package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twiga-dash/pkg/models"
)

func fptr(v float64) *float64 { return &v }

func row(ts string, girID string, herdSize *float64) models.FlatRow {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return models.FlatRow{Time: t, GiraffeID: girID, HerdSize: herdSize}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFilterByDate_InclusiveBothEnds(t *testing.T) {
	rows := []models.FlatRow{
		row("2024-07-31T23:59:59Z", "g0", nil),
		row("2024-08-01T00:00:00Z", "g1", nil),
		row("2024-08-10T12:00:00Z", "g2", nil),
		row("2024-08-31T23:59:59Z", "g3", nil), // end-date boundary stays in
		row("2024-09-01T00:00:00Z", "g4", nil),
	}

	got := FilterByDate(rows, date("2024-08-01"), date("2024-08-31"))

	require.Len(t, got, 3)
	assert.Equal(t, "g1", got[0].GiraffeID)
	assert.Equal(t, "g3", got[2].GiraffeID)
}

func TestSummarize_DistinctIndividualsUseFullSet(t *testing.T) {
	// 2 events x 2 herd members, one id repeated across events
	all := []models.FlatRow{
		row("2024-07-05T08:00:00Z", "g1", fptr(2)),
		row("2024-07-05T08:00:00Z", "g2", fptr(2)),
		row("2024-08-05T08:00:00Z", "g1", fptr(3)),
		row("2024-08-05T08:00:00Z", "g3", fptr(3)),
	}
	filtered := FilterByDate(all, date("2024-08-01"), date("2024-08-31"))

	s := Summarize(all, filtered, 2)

	assert.Equal(t, 2, s.PopulationSize)
	assert.Equal(t, 3, s.DistinctIndividuals) // g1, g2, g3 over the full set
	assert.Equal(t, 2, s.HerdsSeen)           // only the filtered rows
	assert.Equal(t, "3.0", s.AvgHerdSize)
}

func TestSummarize_EmptyGiraffeIDsAreNotCounted(t *testing.T) {
	all := []models.FlatRow{
		row("2024-08-05T08:00:00Z", "", nil), // empty-herd sighting row
		row("2024-08-06T08:00:00Z", "g1", fptr(1)),
	}

	assert.Equal(t, 1, DistinctIndividuals(all))
}

func TestSummarize_MeanHerdSizeNA(t *testing.T) {
	t.Run("empty filtered set", func(t *testing.T) {
		s := Summarize(nil, nil, 0)
		assert.Equal(t, "N/A", s.AvgHerdSize)
		assert.Zero(t, s.HerdsSeen)
	})

	t.Run("all herd sizes missing", func(t *testing.T) {
		filtered := []models.FlatRow{
			row("2024-08-05T08:00:00Z", "g1", nil),
			row("2024-08-06T08:00:00Z", "g2", nil),
		}
		s := Summarize(filtered, filtered, 0)
		assert.Equal(t, "N/A", s.AvgHerdSize)
		assert.Zero(t, s.HerdsSeen)
	})
}

func TestMapPoints_RequireBothCoordinates(t *testing.T) {
	lat, lon := -19.61, 13.42
	rows := []models.FlatRow{
		{Lat: &lat, Lon: &lon},
		{Lat: &lat},
		{Lon: &lon},
		{},
	}

	pts := MapPoints(rows)

	require.Len(t, pts, 1)
	assert.Equal(t, Point{Lat: lat, Lon: lon}, pts[0])
}

func TestMonthlyCounts_Chronological(t *testing.T) {
	rows := []models.FlatRow{
		row("2024-09-10T08:00:00Z", "g1", nil),
		row("2024-07-01T08:00:00Z", "g2", nil),
		row("2024-07-20T08:00:00Z", "g3", nil),
		row("2024-08-15T08:00:00Z", "g4", nil),
	}

	got := MonthlyCounts(rows)

	assert.Equal(t, []MonthCount{
		{Month: "2024-07", Count: 2},
		{Month: "2024-08", Count: 1},
		{Month: "2024-09", Count: 1},
	}, got)
}

func TestAgeSexBreakdown(t *testing.T) {
	rows := []models.FlatRow{
		{GiraffeSex: "female", GiraffeAge: "adult"},
		{GiraffeSex: "female", GiraffeAge: "adult"},
		{GiraffeSex: "male", GiraffeAge: "adult"},
		{GiraffeSex: "female", GiraffeAge: "calf"},
	}

	got := AgeSexBreakdown(rows)

	assert.Equal(t, []GroupCount{
		{Sex: "female", Age: "adult", Count: 2},
		{Sex: "female", Age: "calf", Count: 1},
		{Sex: "male", Age: "adult", Count: 1},
	}, got)
}

func TestSeenNames_SortedAndDeduplicated(t *testing.T) {
	lookup := map[string]string{
		"g1": "Zuri",
		"g2": "Amara",
		"g3": "Kito",
	}
	rows := []models.FlatRow{
		{GiraffeID: "g3"},
		{GiraffeID: "g1"},
		{GiraffeID: "g1"},
		{GiraffeID: "g-unknown"}, // absent from the roster
		{GiraffeID: ""},
	}

	assert.Equal(t, []string{"Kito", "Zuri"}, SeenNames(rows, lookup))
}

func TestSeenNames_SponsoredLookup(t *testing.T) {
	sponsored := map[string]string{"X": "Twiga"}

	rows := []models.FlatRow{
		{GiraffeID: "X"},
		{GiraffeID: "Y"},
	}
	assert.Equal(t, []string{"Twiga"}, SeenNames(rows, sponsored))

	// no overlap at all -> empty result drives the empty-state message
	none := []models.FlatRow{{GiraffeID: "Y"}}
	assert.Empty(t, SeenNames(none, sponsored))
}

func TestDateBounds(t *testing.T) {
	_, _, ok := DateBounds(nil)
	assert.False(t, ok)

	rows := []models.FlatRow{
		row("2024-08-15T08:00:00Z", "g1", nil),
		row("2024-07-01T08:00:00Z", "g2", nil),
		row("2024-09-10T08:00:00Z", "g3", nil),
	}
	min, max, ok := DateBounds(rows)
	require.True(t, ok)
	assert.Equal(t, "2024-07-01", min.Format("2006-01-02"))
	assert.Equal(t, "2024-09-10", max.Format("2006-01-02"))
}
