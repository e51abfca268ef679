// Package catalog wraps the EarthRanger client with the fixed
// monitoring-program identifiers and the one-hour fetch cache.
package catalog

import (
	"log"
	"time"

	"twiga-dash/internal/cache"
	"twiga-dash/internal/flatten"
	"twiga-dash/pkg/models"
)

// Fixed identifiers of the NW Namibia monitoring program.
const (
	// NamibiaNWGroupID is the subject group holding the full NANW roster.
	NamibiaNWGroupID = "518a21df-46a0-4dfb-90de-54e1caca889e"

	// AdoptAGiraffeGroupID is the donor-facing adoption program group.
	AdoptAGiraffeGroupID = "660dbfb0-a7cb-4b93-92e9-a8f006f9bead"

	// EventCategory scopes the event queries.
	EventCategory = "monitoring_nanw"

	// SightingsSince is the fixed start of the analysis window; the
	// upper bound is always "now" at fetch time.
	SightingsSince = "2024-07-01T00:00:00Z"

	// FetchTTL is how long each fetch result is reused before the
	// server is asked again.
	FetchTTL = time.Hour
)

// Source is the slice of the client the catalog needs.
type Source interface {
	GetSubjects(groupID string) ([]models.Subject, error)
	GetEvents(category string, since, until time.Time) ([]models.Event, error)
}

type Catalog struct {
	source Source
	cache  *cache.Cache
}

func New(source Source, c *cache.Cache) *Catalog {
	return &Catalog{source: source, cache: c}
}

// ActiveRoster fetches the group's subjects and keeps only those with
// is_active set to true.
func (c *Catalog) ActiveRoster(groupID string) ([]models.Subject, error) {
	return cache.Do(c.cache, "active_roster", groupID, func() ([]models.Subject, error) {
		subjects, err := c.source.GetSubjects(groupID)
		if err != nil {
			return nil, err
		}
		active := make([]models.Subject, 0, len(subjects))
		for _, s := range subjects {
			if s.IsActive {
				active = append(active, s)
			}
		}
		return active, nil
	})
}

// SponsoredRoster fetches the group's subjects without filtering.
func (c *Catalog) SponsoredRoster(groupID string) ([]models.Subject, error) {
	return cache.Do(c.cache, "sponsored_roster", groupID, func() ([]models.Subject, error) {
		return c.source.GetSubjects(groupID)
	})
}

// FlatSightings fetches the category's events from since until now and
// flattens them, as one cached unit: the flat rows live and die with
// the fetch that produced them. The cache key deliberately excludes the
// upper bound, so within one TTL window the same result is reused even
// though "now" moves.
func (c *Catalog) FlatSightings(category string, since time.Time) ([]models.FlatRow, error) {
	key := category + "|" + since.UTC().Format(time.RFC3339)
	return cache.Do(c.cache, "sightings", key, func() ([]models.FlatRow, error) {
		events, err := c.source.GetEvents(category, since, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		rows, dropped := flatten.Flatten(events)
		if dropped > 0 {
			log.Printf("flatten: dropped %d rows with unparseable timestamps", dropped)
		}
		return rows, nil
	})
}
