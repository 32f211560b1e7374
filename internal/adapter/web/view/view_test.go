package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-directory/internal/domain/user"
	usecase "user-directory/internal/usecase/user"
)

func leanne() domain.User {
	return domain.User{
		ID:       1,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Phone:    "1-770-736-8031 x56442",
		Website:  "hildegard.org",
		Address: domain.Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
			Geo:     domain.Geo{Lat: "-37.3159", Lng: "81.1496"},
		},
		Company: domain.Company{
			Name:        "Romaguera-Crona",
			CatchPhrase: "Multi-layered client-server neural-net",
			BS:          "harness real-time e-markets",
		},
	}
}

func TestNewListView_Rows(t *testing.T) {
	resp := &usecase.ListUsersResponse{
		Users:      []domain.User{leanne()},
		Pagination: domain.NewPagination(1, 1, domain.PageSize),
		Query:      "lea",
	}

	v := NewListView(resp, "lea")

	require.Len(t, v.Rows, 1)
	row := v.Rows[0]
	assert.Equal(t, "Leanne Graham", row.Name)
	assert.Equal(t, "@Bret", row.Username)
	assert.Equal(t, "Romaguera-Crona", row.CompanyName)
	assert.Equal(t, "/user/1", row.DetailURL)
	assert.Equal(t, "Showing 1 of 1 users", v.Footer())
	assert.False(t, v.Empty())
	assert.Empty(t, v.PrevURL)
	assert.Empty(t, v.NextURL)
}

func TestNewListView_Empty(t *testing.T) {
	resp := &usecase.ListUsersResponse{
		Users:      []domain.User{},
		Pagination: domain.NewPagination(0, 1, domain.PageSize),
		Query:      "zzz",
	}

	v := NewListView(resp, "zzz")

	assert.True(t, v.Empty())
	assert.Equal(t, "No users found matching your search.", v.EmptyMessage)
	assert.Equal(t, "Showing 0 of 0 users", v.Footer())
}

func TestNewListView_PageLinksCarryQuery(t *testing.T) {
	users := make([]domain.User, 10)
	resp := &usecase.ListUsersResponse{
		Users:      users,
		Pagination: domain.NewPagination(25, 2, domain.PageSize),
		Query:      "a b",
	}

	v := NewListView(resp, "a b")

	assert.Equal(t, "/?q=a+b", v.PrevURL)
	assert.Equal(t, "/?page=3&q=a+b", v.NextURL)
	assert.Equal(t, "Showing 10 of 25 users", v.Footer())
}

func TestNewListView_PrevFromPastEndPointsAtLastPage(t *testing.T) {
	resp := &usecase.ListUsersResponse{
		Users:      []domain.User{},
		Pagination: domain.NewPagination(12, 7, domain.PageSize),
	}

	v := NewListView(resp, "")

	assert.Equal(t, "/?page=2", v.PrevURL)
	assert.Empty(t, v.NextURL)
}

func TestListURL(t *testing.T) {
	assert.Equal(t, "/", ListURL("", 1))
	assert.Equal(t, "/?page=2", ListURL("", 2))
	assert.Equal(t, "/?q=tv", ListURL("tv", 0))
}

func TestNewDetailView_Found(t *testing.T) {
	u := leanne()

	v := NewDetailView(&u)

	require.True(t, v.Found)
	require.Len(t, v.Sections, 3)
	assert.Equal(t, "Personal Information", v.Sections[0].Heading)
	assert.Equal(t, Field{Label: "Username", Value: "@Bret"}, v.Sections[0].Fields[1])
	assert.Equal(t, Field{Label: "Website", Value: "hildegard.org", Href: "http://hildegard.org"}, v.Sections[0].Fields[4])
	assert.Equal(t, "Address", v.Sections[1].Heading)
	assert.Equal(t, Field{Label: "Geo Location", Value: "-37.3159, 81.1496"}, v.Sections[1].Fields[4])
	assert.Equal(t, "Company", v.Sections[2].Heading)
	assert.Equal(t, Field{Label: "Business", Value: "harness real-time e-markets"}, v.Sections[2].Fields[2])
}

func TestNewDetailView_NotFound(t *testing.T) {
	v := NewDetailView(nil)

	assert.False(t, v.Found)
	assert.Equal(t, "Could not find user.", v.Message)
	assert.Equal(t, "/", v.BackURL)
	assert.Empty(t, v.Sections)
}
