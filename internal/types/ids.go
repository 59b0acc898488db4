package types

// ID types give the string identifiers of the pipeline semantic meaning.
// Deals and stages are both keyed by strings: deals by generated uuids,
// stages by the short ids from the pipeline configuration.

// DealID identifies a unique deal on the board
type DealID string

// StageID identifies a pipeline stage (a board column)
type StageID string

// String returns the raw identifier
func (id DealID) String() string {
	return string(id)
}

// String returns the raw identifier
func (id StageID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty
func (id DealID) IsZero() bool {
	return id == ""
}

// IsZero reports whether the id is empty
func (id StageID) IsZero() bool {
	return id == ""
}
