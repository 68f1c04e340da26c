package models

// FilterState holds the list-view search constraints. Every field is
// optional; empty strings (or page 0) mean "not set" and are omitted from any
// derived query string.
type FilterState struct {
	Status     string
	Type       string
	MinPrice   string
	MaxPrice   string
	Bedrooms   string
	Bathrooms  string
	City       string
	Furnishing string
	Page       int
}

// IsZero reports whether no filter constraint is set at all.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}
