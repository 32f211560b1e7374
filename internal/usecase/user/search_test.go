package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchState_TypeDoesNotChangeActiveQuery(t *testing.T) {
	s := NewSearchState()
	s.Type("lean")

	assert.Equal(t, "lean", s.SearchTerm)
	assert.Equal(t, "", s.ActiveQuery)
	assert.Equal(t, ListUsersRequest{Query: "", Page: 1}, s.Request())
}

func TestSearchState_CommitResetsPage(t *testing.T) {
	s := NewSearchState()
	s.Type("leanne")
	s.Commit()
	s.GoToPage(3)

	s.Type("ervin")
	assert.Equal(t, "leanne", s.ActiveQuery)
	assert.Equal(t, int64(3), s.Page)

	s.Commit()
	assert.Equal(t, "ervin", s.ActiveQuery)
	assert.Equal(t, int64(1), s.Page)
}

func TestSearchState_CommitSameQueryStillResetsPage(t *testing.T) {
	s := NewSearchState()
	s.GoToPage(2)
	s.Commit()

	assert.Equal(t, int64(1), s.Page)
}

func TestSearchState_GoToPageClampsLow(t *testing.T) {
	s := NewSearchState()
	s.GoToPage(0)
	assert.Equal(t, int64(1), s.Page)

	s.GoToPage(-3)
	assert.Equal(t, int64(1), s.Page)
}
