package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// Deal represents a single deal card on the pipeline board.
// A deal never stores its stage; placement is owned by the board's stage sequences.
type Deal struct {
	ID              types.DealID
	Title           string
	Company         string // Associated party
	Contact         string
	ContactInitials string // Short label shown on the card avatar
	Amount          decimal.Decimal
	Due             string // Free-form due marker, e.g. "Aug 28" or "2 weeks"
	Owner           string // Opaque reference to the acting user
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GetID returns the deal ID as a string for quiet CLI output
func (d *Deal) GetID() string {
	return d.ID.String()
}

// DealFields holds the caller-supplied fields for a new deal
type DealFields struct {
	Title           string
	Company         string
	Contact         string
	ContactInitials string
	Amount          decimal.Decimal
	Due             string
	Owner           string
}

// DealPatch describes a partial update. Nil fields are left untouched.
type DealPatch struct {
	Title           *string
	Company         *string
	Contact         *string
	ContactInitials *string
	Amount          *decimal.Decimal
	Due             *string
	Owner           *string
}

// IsEmpty reports whether the patch changes nothing
func (p DealPatch) IsEmpty() bool {
	return p.Title == nil && p.Company == nil && p.Contact == nil &&
		p.ContactInitials == nil && p.Amount == nil && p.Due == nil && p.Owner == nil
}

// Apply merges the non-nil patch fields into d
func (p DealPatch) Apply(d *Deal) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Company != nil {
		d.Company = *p.Company
	}
	if p.Contact != nil {
		d.Contact = *p.Contact
	}
	if p.ContactInitials != nil {
		d.ContactInitials = *p.ContactInitials
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Due != nil {
		d.Due = *p.Due
	}
	if p.Owner != nil {
		d.Owner = *p.Owner
	}
}

// DealDetail is a deal together with its current placement
type DealDetail struct {
	Deal
	StageID    types.StageID
	StageLabel string
	Position   int
}
