package entry

import "github.com/heartmarshall/focloireacht-backend/internal/domain"

// filter is a domain.EntryFilter with defaults applied.
type filter struct {
	SortBy string
	Limit  int
	Offset int
}

const (
	defaultLimit = 10
	maxLimit     = 100

	SortByPopularity = domain.EntrySortPopularity
	SortByCreatedAt  = domain.EntrySortCreatedAt
)

// normalize applies defaults and clamps values.
func (f *filter) normalize() {
	switch f.SortBy {
	case SortByPopularity, SortByCreatedAt:
	default:
		f.SortBy = SortByPopularity
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}

// orderBy returns the ORDER BY clause for the current SortBy value.
// id is the final tie-breaker so pages are stable.
func (f *filter) orderBy() string {
	if f.SortBy == SortByCreatedAt {
		return "created_at DESC, id ASC"
	}
	return "popularity DESC, id ASC"
}
