package domain

// UsageStatus describes how current a headword is in the living language.
type UsageStatus string

const (
	UsageStatusCurrent  UsageStatus = "CURRENT"
	UsageStatusArchaic  UsageStatus = "ARCHAIC"
	UsageStatusRegional UsageStatus = "REGIONAL"
	UsageStatusRare     UsageStatus = "RARE"
)

func (s UsageStatus) String() string { return string(s) }

func (s UsageStatus) IsValid() bool {
	switch s {
	case UsageStatusCurrent, UsageStatusArchaic, UsageStatusRegional, UsageStatusRare:
		return true
	}
	return false
}

// UserRole controls access to moderation and administration.
type UserRole string

const (
	UserRoleContributor UserRole = "CONTRIBUTOR"
	UserRoleEditor      UserRole = "EDITOR"
	UserRoleAdmin       UserRole = "ADMIN"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleContributor, UserRoleEditor, UserRoleAdmin:
		return true
	}
	return false
}

// IsAdmin returns true if the role has administrative privileges.
func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// CanModerate returns true for roles allowed to review submissions, reports and suggestions.
func (r UserRole) CanModerate() bool {
	return r == UserRoleEditor || r == UserRoleAdmin
}

// SubmissionType identifies which content change a submission proposes.
type SubmissionType string

const (
	SubmissionTypeNewEntry         SubmissionType = "NEW_ENTRY"
	SubmissionTypeNewDefinition    SubmissionType = "NEW_DEFINITION"
	SubmissionTypeNewVariant       SubmissionType = "NEW_VARIANT"
	SubmissionTypeEditEntry        SubmissionType = "EDIT_ENTRY"
	SubmissionTypeEditDefinition   SubmissionType = "EDIT_DEFINITION"
	SubmissionTypeEditVariant      SubmissionType = "EDIT_VARIANT"
	SubmissionTypeDeleteEntry      SubmissionType = "DELETE_ENTRY"
	SubmissionTypeDeleteDefinition SubmissionType = "DELETE_DEFINITION"
	SubmissionTypeDeleteVariant    SubmissionType = "DELETE_VARIANT"
)

func (t SubmissionType) String() string { return string(t) }

func (t SubmissionType) IsValid() bool {
	switch t {
	case SubmissionTypeNewEntry, SubmissionTypeNewDefinition, SubmissionTypeNewVariant,
		SubmissionTypeEditEntry, SubmissionTypeEditDefinition, SubmissionTypeEditVariant,
		SubmissionTypeDeleteEntry, SubmissionTypeDeleteDefinition, SubmissionTypeDeleteVariant:
		return true
	}
	return false
}

// SubmissionStatus is the review state of a submission.
type SubmissionStatus string

const (
	SubmissionStatusPending       SubmissionStatus = "PENDING"
	SubmissionStatusApproved      SubmissionStatus = "APPROVED"
	SubmissionStatusRejected      SubmissionStatus = "REJECTED"
	SubmissionStatusNeedsRevision SubmissionStatus = "NEEDS_REVISION"
)

func (s SubmissionStatus) String() string { return string(s) }

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusNeedsRevision:
		return true
	}
	return false
}

// IsTerminal reports whether no further review may happen.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// IsDecision reports whether s is a status a reviewer may set.
func (s SubmissionStatus) IsDecision() bool {
	switch s {
	case SubmissionStatusApproved, SubmissionStatusRejected, SubmissionStatusNeedsRevision:
		return true
	}
	return false
}

// ReportReason is why a piece of content was flagged.
type ReportReason string

const (
	ReportReasonInappropriate ReportReason = "INAPPROPRIATE"
	ReportReasonIncorrect     ReportReason = "INCORRECT"
	ReportReasonDuplicate     ReportReason = "DUPLICATE"
	ReportReasonSpam          ReportReason = "SPAM"
	ReportReasonCopyright     ReportReason = "COPYRIGHT"
	ReportReasonOther         ReportReason = "OTHER"
)

func (r ReportReason) String() string { return string(r) }

func (r ReportReason) IsValid() bool {
	switch r {
	case ReportReasonInappropriate, ReportReasonIncorrect, ReportReasonDuplicate,
		ReportReasonSpam, ReportReasonCopyright, ReportReasonOther:
		return true
	}
	return false
}

// ReportAction is the content change a resolved report triggers.
type ReportAction string

const (
	ReportActionNone       ReportAction = "NONE"
	ReportActionDeactivate ReportAction = "DEACTIVATE"
	ReportActionDelete     ReportAction = "DELETE"
)

// Action returns what resolving a report with this reason does to the target.
func (r ReportReason) Action() ReportAction {
	switch r {
	case ReportReasonInappropriate, ReportReasonIncorrect:
		return ReportActionDeactivate
	case ReportReasonSpam:
		return ReportActionDelete
	}
	return ReportActionNone
}

// ReportStatus is the review state of a report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

func (s ReportStatus) String() string { return string(s) }

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// SuggestionType names the entry field a suggestion changes.
type SuggestionType string

const (
	SuggestionTypeHeadword      SuggestionType = "HEADWORD"
	SuggestionTypeDefinition    SuggestionType = "DEFINITION"
	SuggestionTypeEtymology     SuggestionType = "ETYMOLOGY"
	SuggestionTypeNotes         SuggestionType = "NOTES"
	SuggestionTypePronunciation SuggestionType = "PRONUNCIATION"
	SuggestionTypeUsageStatus   SuggestionType = "USAGE_STATUS"
	SuggestionTypeRegion        SuggestionType = "REGION"
)

func (t SuggestionType) String() string { return string(t) }

func (t SuggestionType) IsValid() bool {
	switch t {
	case SuggestionTypeHeadword, SuggestionTypeDefinition, SuggestionTypeEtymology, SuggestionTypeNotes,
		SuggestionTypePronunciation, SuggestionTypeUsageStatus, SuggestionTypeRegion:
		return true
	}
	return false
}

// SuggestionStatus is the review state of a suggestion.
type SuggestionStatus string

const (
	SuggestionStatusPending     SuggestionStatus = "PENDING"
	SuggestionStatusApproved    SuggestionStatus = "APPROVED"
	SuggestionStatusRejected    SuggestionStatus = "REJECTED"
	SuggestionStatusImplemented SuggestionStatus = "IMPLEMENTED"
)

func (s SuggestionStatus) String() string { return string(s) }

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case SuggestionStatusPending, SuggestionStatusApproved, SuggestionStatusRejected, SuggestionStatusImplemented:
		return true
	}
	return false
}

// Applies reports whether entering this status patches the target entry.
func (s SuggestionStatus) Applies() bool {
	return s == SuggestionStatusApproved || s == SuggestionStatusImplemented
}

// VoteOutcome describes what a cast vote did to the stored vote.
type VoteOutcome string

const (
	VoteOutcomeRecorded VoteOutcome = "recorded"
	VoteOutcomeRemoved  VoteOutcome = "removed"
	VoteOutcomeUpdated  VoteOutcome = "updated"
)

func (o VoteOutcome) String() string { return string(o) }

// Message is the user-facing text for the outcome.
func (o VoteOutcome) Message() string {
	switch o {
	case VoteOutcomeRecorded:
		return "Vote recorded."
	case VoteOutcomeRemoved:
		return "Vote removed."
	case VoteOutcomeUpdated:
		return "Vote updated."
	}
	return ""
}
