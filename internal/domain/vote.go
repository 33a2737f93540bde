package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one user's judgment of one definition. At most one exists per
// (UserID, DefinitionID).
type Vote struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	DefinitionID uuid.UUID
	IsUpvote     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Weight is the vote's contribution to popularity.
func (v Vote) Weight() int {
	if v.IsUpvote {
		return 1
	}
	return -1
}

// VoteResult reports what a cast vote changed.
type VoteResult struct {
	Outcome      VoteOutcome
	Message      string
	Delta        int
	DefinitionID uuid.UUID
	EntryID      uuid.UUID
}
