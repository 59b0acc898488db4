package models

// ============================================================================
// NEW DEAL DEFAULTS
// ============================================================================

// Defaults applied to deals created without contact or due information
const (
	DefaultContact         = "New Contact"
	DefaultContactInitials = "NC"
	DefaultDue             = "2 weeks"
)

// ============================================================================
// VALIDATION LIMITS
// ============================================================================

// MaxTitleLength is the maximum deal title length in characters
const MaxTitleLength = 255

// MaxStageLabelLength is the maximum stage label length in characters
const MaxStageLabelLength = 50
