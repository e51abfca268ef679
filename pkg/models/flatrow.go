package models

import "time"

// FlatRow is the unit of analysis: one row per (event, herd member)
// pair. The JSON tags are the analytic column names the downstream
// panels and exports key on; they follow the field naming of the
// original reporting sheets, including the "evt_gifLeft" spelling.
type FlatRow struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	EventID     string    `json:"event_id"`
	EventType   string    `json:"evt_type"`
	Category    string    `json:"evt_category"`
	Serial      int64     `json:"evt_serial"`
	URL         string    `json:"evt_url"`
	Time        time.Time `json:"evt_dttm"`
	Lat         *float64  `json:"lat"`
	Lon         *float64  `json:"lon"`
	ImagePrefix string    `json:"evt_imagePrefix"`
	RiverSystem string    `json:"evt_riverSystem"`

	// Herd-level fields, shared by every row of the same event
	HerdDir   string   `json:"evt_herd_dir"`
	HerdDist  string   `json:"evt_herd_dist"`
	HerdSize  *float64 `json:"evt_herdSize"`
	HerdNotes string   `json:"evt_herdNotes"`

	// Per-giraffe observation fields, empty when the event carried
	// no herd members
	GiraffeID     string `json:"evt_girID"`
	GiraffeAge    string `json:"evt_girAge"`
	GiraffeSex    string `json:"evt_girSex"`
	GiraffeGSD    string `json:"evt_girGSD"`
	GiraffeGSDLoc string `json:"evt_girGSD_loc"`
	GiraffeGSDSev string `json:"evt_girGSD_sev"`
	GiraffeDire   string `json:"evt_girDire"`
	GiraffeDist   string `json:"evt_girDist"`
	GiraffeSnare  string `json:"evt_girSnare"`
	GiraffeRight  string `json:"evt_girRight"`
	GiraffeLeft   string `json:"evt_gifLeft"`
	GiraffeNotes  string `json:"evt_girNotes"`
}
