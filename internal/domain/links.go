package domain

import "github.com/google/uuid"

// EntryKey is the natural key of an entry.
type EntryKey struct {
	Headword     string
	PartOfSpeech string
}

// EntryRegionLink associates an entry with a dialect region.
type EntryRegionLink struct {
	EntryID  uuid.UUID
	RegionID uuid.UUID
}

// EntrySourceLink cites a source for an entry, optionally at a page.
type EntrySourceLink struct {
	EntryID  uuid.UUID
	SourceID uuid.UUID
	Page     *string
}
