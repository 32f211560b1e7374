package user

import "strings"

// Matches reports whether u satisfies the search query. An empty query matches
// every user; otherwise the query must appear, ignoring case, in the name or
// the email.
func Matches(u User, query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// Filter returns the users matching query, preserving order. An empty query
// returns users unchanged.
func Filter(users []User, query string) []User {
	if query == "" {
		return users
	}

	filtered := make([]User, 0, len(users))
	for _, u := range users {
		if Matches(u, query) {
			filtered = append(filtered, u)
		}
	}

	return filtered
}
