package domain

// Entry listing sort orders.
const (
	EntrySortPopularity = "popularity"
	EntrySortCreatedAt  = "created_at"
)

// EntryFilter contains ordering/pagination parameters for entry listings.
type EntryFilter struct {
	// SortBy is "popularity" (default) or "created_at".
	SortBy string
	Limit  int
	Offset int
}

// SearchQuery is a validated search request.
type SearchQuery struct {
	// Normalized is the query after NormalizeText.
	Normalized string
	// Raw is the trimmed user input, used for headword and full-text matching.
	Raw    string
	Limit  int
	Offset int
}
