package user

// SearchState holds the list view's search text. SearchTerm follows the
// input box; ActiveQuery is what the list is filtered by and only changes on
// Commit.
type SearchState struct {
	SearchTerm  string
	ActiveQuery string
	Page        int64
}

// NewSearchState returns a state on the first page with no query.
func NewSearchState() *SearchState {
	return &SearchState{Page: 1}
}

// Type updates the typed text without touching the active query.
func (s *SearchState) Type(text string) {
	s.SearchTerm = text
}

// Commit makes the typed text the active query and returns to page 1.
func (s *SearchState) Commit() {
	s.ActiveQuery = s.SearchTerm
	s.Page = 1
}

// GoToPage moves to page n. Values below 1 select the first page.
func (s *SearchState) GoToPage(n int64) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

// Request returns the ListUsersRequest for the current state.
func (s *SearchState) Request() ListUsersRequest {
	return ListUsersRequest{Query: s.ActiveQuery, Page: s.Page}
}
