package models

// EventListResponse represents one page of the activity/events API response
type EventListResponse struct {
	Data struct {
		Count   int     `json:"count"`
		Next    string  `json:"next"` // URL of the next page, empty on the last one
		Results []Event `json:"results"`
	} `json:"data"`
}

// Event is one sighting report as returned by the server, with the
// per-giraffe herd observations still nested under event_details.
type Event struct {
	ID            string       `json:"id"`
	SerialNumber  int64        `json:"serial_number"`
	EventType     string       `json:"event_type"`
	EventCategory string       `json:"event_category"`
	Time          string       `json:"time"` // ISO 8601
	URL           string       `json:"url"`
	ReportedBy    Reporter     `json:"reported_by"`
	Location      *Location    `json:"location"`
	EventDetails  EventDetails `json:"event_details"`
}

type Reporter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EventDetails holds the herd-level fields plus the nested per-giraffe
// observation list. The JSON key for the list is capitalized "Herd" on
// the server side.
type EventDetails struct {
	ImagePrefix string       `json:"image_prefix"`
	RiverSystem string       `json:"river_system"`
	HerdDire    string       `json:"herd_dire"`
	HerdDist    string       `json:"herd_dist"`
	HerdSize    *float64     `json:"herd_size"`
	HerdNotes   string       `json:"herd_notes"`
	Herd        []HerdMember `json:"Herd"`
}

// HerdMember describes one giraffe seen as part of a sighting
type HerdMember struct {
	GiraffeID     string `json:"giraffe_id"`
	GiraffeAge    string `json:"giraffe_age"`
	GiraffeSex    string `json:"giraffe_sex"`
	GiraffeGSD    string `json:"giraffe_gsd"` // Giraffe Skin Disease presence
	GiraffeGSDLoc string `json:"giraffe_gsd_loc"`
	GiraffeGSDSev string `json:"giraffe_gsd_sev"`
	GiraffeDire   string `json:"giraffe_dire"`
	GiraffeDist   string `json:"giraffe_dist"`
	GiraffeSnare  string `json:"giraffe_snar"` // JSON key is "giraffe_snar", not "giraffe_snare"
	GiraffeRight  string `json:"giraffe_right"`
	GiraffeLeft   string `json:"giraffe_left"`
	GiraffeNotes  string `json:"giraffe_notes"`
}
