// Package view turns directory data into render-ready page models.
package view

import (
	"fmt"
	"net/url"
	"strconv"

	domain "user-directory/internal/domain/user"
	usecase "user-directory/internal/usecase/user"
)

// EmptyMessage is shown when the current page has no rows.
const EmptyMessage = "No users found matching your search."

// NotFoundMessage is shown when a detail record is absent.
const NotFoundMessage = "Could not find user."

// UserRow is one line of the directory table.
type UserRow struct {
	ID          int64
	Name        string
	Username    string // rendered with a leading @
	Email       string
	Phone       string
	CompanyName string
	DetailURL   string
}

// ListView is the model for the directory page.
type ListView struct {
	Title        string
	SearchTerm   string
	ActiveQuery  string
	Rows         []UserRow
	Shown        int
	Matched      int64
	Page         int64
	TotalPages   int64
	PrevURL      string
	NextURL      string
	EmptyMessage string
}

// Footer returns the "Showing N of M users" line.
func (v ListView) Footer() string {
	return fmt.Sprintf("Showing %d of %d users", v.Shown, v.Matched)
}

// Empty reports whether the page has no rows.
func (v ListView) Empty() bool {
	return len(v.Rows) == 0
}

// NewListView builds the directory page model. searchTerm is the text to
// show in the search box; the filter itself comes from resp.Query.
func NewListView(resp *usecase.ListUsersResponse, searchTerm string) ListView {
	v := ListView{
		Title:        "User Management",
		SearchTerm:   searchTerm,
		EmptyMessage: EmptyMessage,
		Page:         1,
	}
	if resp == nil {
		return v
	}

	v.ActiveQuery = resp.Query
	v.Rows = make([]UserRow, 0, len(resp.Users))
	for _, u := range resp.Users {
		v.Rows = append(v.Rows, newUserRow(u))
	}
	v.Shown = len(v.Rows)

	if p := resp.Pagination; p != nil {
		v.Matched = p.Total
		v.Page = p.Page
		v.TotalPages = p.TotalPages
		if p.HasPrev() {
			v.PrevURL = ListURL(resp.Query, min(p.Page-1, max(p.TotalPages, 1)))
		}
		if p.HasNext() {
			v.NextURL = ListURL(resp.Query, p.Page+1)
		}
	}

	return v
}

func newUserRow(u domain.User) UserRow {
	return UserRow{
		ID:          u.ID,
		Name:        u.Name,
		Username:    "@" + u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		CompanyName: u.Company.Name,
		DetailURL:   DetailURL(u.ID),
	}
}

// ListURL returns the directory URL for query and page.
func ListURL(query string, page int64) string {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if page > 1 {
		values.Set("page", strconv.FormatInt(page, 10))
	}
	if len(values) == 0 {
		return "/"
	}
	return "/?" + values.Encode()
}

// DetailURL returns the detail page URL for a user id.
func DetailURL(id int64) string {
	return "/user/" + strconv.FormatInt(id, 10)
}

// Field is one labelled value on the detail page.
type Field struct {
	Label string
	Value string
	Href  string // set when the value is a link
}

// Section groups detail fields under a heading.
type Section struct {
	Heading string
	Fields  []Field
}

// DetailView is the model for the user detail page.
type DetailView struct {
	Title    string
	Found    bool
	Message  string
	BackURL  string
	Sections []Section
}

// NewDetailView builds the detail page model. A nil user produces the
// not-found variant.
func NewDetailView(u *domain.User) DetailView {
	if u == nil {
		return DetailView{
			Title:   "User Details",
			Message: NotFoundMessage,
			BackURL: "/",
		}
	}

	return DetailView{
		Title:   "User Details",
		Found:   true,
		BackURL: "/",
		Sections: []Section{
			{
				Heading: "Personal Information",
				Fields: []Field{
					{Label: "Name", Value: u.Name},
					{Label: "Username", Value: "@" + u.Username},
					{Label: "Email", Value: u.Email},
					{Label: "Phone", Value: u.Phone},
					{Label: "Website", Value: u.Website, Href: "http://" + u.Website},
				},
			},
			{
				Heading: "Address",
				Fields: []Field{
					{Label: "Street", Value: u.Address.Street},
					{Label: "Suite", Value: u.Address.Suite},
					{Label: "City", Value: u.Address.City},
					{Label: "Zipcode", Value: u.Address.Zipcode},
					{Label: "Geo Location", Value: u.Address.Geo.Lat + ", " + u.Address.Geo.Lng},
				},
			},
			{
				Heading: "Company",
				Fields: []Field{
					{Label: "Company Name", Value: u.Company.Name},
					{Label: "Catch Phrase", Value: u.Company.CatchPhrase},
					{Label: "Business", Value: u.Company.BS},
				},
			},
		},
	}
}
