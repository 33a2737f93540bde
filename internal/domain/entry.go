package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a dictionary headword. Popularity is the sum of its definitions'
// popularity and changes only through votes and content removal.
type Entry struct {
	ID           uuid.UUID
	Headword     string
	Normalized   string
	Slug         string
	PartOfSpeech string
	Etymology    *string
	Notes        *string
	UsageStatus  UsageStatus
	Popularity   int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Definition is one sense of an entry. Popularity is the signed sum of its votes.
type Definition struct {
	ID         uuid.UUID
	EntryID    uuid.UUID
	Text       string
	Example    *string
	Notes      *string
	Popularity int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Variant is an alternate spelling or pronunciation of an entry.
type Variant struct {
	ID            uuid.UUID
	EntryID       uuid.UUID
	Spelling      string
	Normalized    string
	Pronunciation *string
	Notes         *string
	IsActive      bool
	CreatedAt     time.Time
}

// Region is a dialect area, usually a Gaeltacht.
type Region struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	Country     string
	County      *string
	EntryCount  int
	CreatedAt   time.Time
}

// Source is a printed or online reference cited by entries.
type Source struct {
	ID        uuid.UUID
	Title     string
	Author    *string
	Publisher *string
	Year      *int
	ISBN      *string
	URL       *string
	Page      *string
	CreatedAt time.Time
}

// EntryDetail is an entry with its active content, as shown on the entry page.
type EntryDetail struct {
	Entry
	Definitions []Definition
	Variants    []Variant
	Regions     []Region
	Sources     []Source
}

// RegionDetail is a region with its active entries ordered by popularity.
type RegionDetail struct {
	Region
	Entries []Entry
}

// EntryPatch lists the entry fields to overwrite. Nil fields are left untouched.
type EntryPatch struct {
	Headword     *string
	PartOfSpeech *string
	Etymology    *string
	Notes        *string
	UsageStatus  *UsageStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Headword == nil && p.PartOfSpeech == nil && p.Etymology == nil &&
		p.Notes == nil && p.UsageStatus == nil
}
