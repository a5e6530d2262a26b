package shared

// Filter represents query filter options shared by list endpoints
type Filter struct {
	Limit   int
	Offset  int
	Search  string
	Filters map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Limit:   50,
		Offset:  0,
		Filters: make(map[string]interface{}),
	}
}

// Normalize clamps pagination values into a sane range
func (f *Filter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, limit, offset int) Paginated[T] {
	return Paginated[T]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
