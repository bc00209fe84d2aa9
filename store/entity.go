package store

// State is the immutable value held by an EntityStore.
type State[E any] struct {
	// Entities is the ordered entity list. Identifiers are unique.
	Entities []E

	// Pagination is nil when never set or explicitly cleared.
	Pagination *Pagination
}

// Pagination carries paging metadata alongside the entities.
// A zero field means the field is not set.
type Pagination struct {
	PageIndex int `json:"pageIndex,omitempty" dynamodbav:"pageIndex,omitempty"`
	PageSize  int `json:"pageSize,omitempty" dynamodbav:"pageSize,omitempty"`
	PageCount int `json:"pageCount,omitempty" dynamodbav:"pageCount,omitempty"`
	Count     int `json:"count,omitempty" dynamodbav:"count,omitempty"`
}

// AddOptions controls where added entities are placed.
type AddOptions struct {
	// Prepend inserts at the start instead of the end.
	Prepend bool

	// AfterID inserts right after the entity with this identifier.
	// When no entity matches, placement falls back to Prepend, then append.
	AfterID any
}

// Patch is a partial entity keyed by attribute name.
// It is shallow-merged onto matched entities by Update.
type Patch map[string]any
