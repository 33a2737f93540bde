package domain

import "github.com/google/uuid"

// SearchHit is one entry matched by a search.
type SearchHit struct {
	EntryID       uuid.UUID
	Headword      string
	Slug          string
	PartOfSpeech  string
	Popularity    int
	TopDefinition *string
}

// SearchResult is the merged, ranked hit list.
type SearchResult struct {
	Results []SearchHit
	Total   int
}
