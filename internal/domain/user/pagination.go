package user

// PageSize is the fixed number of records shown per page.
const PageSize = 10

// Pagination represents pagination information for list responses.
type Pagination struct {
	Total      int64 // Total number of records
	Page       int64 // Current page number (1-based)
	Limit      int64 // Number of records per page
	TotalPages int64 // Total number of pages
}

// NewPagination creates a new Pagination instance with calculated total pages.
func NewPagination(total, page, limit int64) *Pagination {
	totalPages := limit
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether a page exists before the current one.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a page exists after the current one.
func (p *Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Paginate returns the slice of users shown on page (1-based) for the given
// page size. Pages below 1 are treated as page 1; pages past the end yield an
// empty slice.
func Paginate(users []User, page, limit int64) []User {
	if limit <= 0 {
		limit = PageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= int64(len(users)) {
		return []User{}
	}
	end := min(start+limit, int64(len(users)))

	return users[start:end]
}
