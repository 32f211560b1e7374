package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"user-directory/internal/adapter/web/view"
	"user-directory/pkg/security"
)

const resultsTarget = `hx-target="#results" hx-swap="outerHTML"`

// ListPage renders the full directory page.
func ListPage(v view.ListView) templ.Component {
	return layout(v.Title, component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(v.Title)
		h.raw("</h1>\n")
		searchForm(h, v.SearchTerm)
		h.component(ListResults(v))
	}))
}

func searchForm(h *htmlWriter, term string) {
	h.raw(`<form action="/search" method="get" hx-get="/search" ` + resultsTarget + ">\n")
	h.raw(`<input type="text" name="term" value="`)
	h.text(term)
	h.raw(`" placeholder="Search by name or email" maxlength="`)
	h.raw(strconv.Itoa(security.MaxSearchQueryLength))
	h.raw(`" autocomplete="off">` + "\n")
	h.raw(`<button type="submit">Search</button>` + "\n</form>\n")
}

// ListResults renders only the results section, for htmx swaps.
func ListResults(v view.ListView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="results">` + "\n<table>\n")
		h.raw("<thead><tr><th>Name</th><th>Email</th><th>Phone</th><th>Company</th></tr></thead>\n<tbody>\n")
		for _, row := range v.Rows {
			userRow(h, row)
		}
		if v.Empty() {
			h.raw(`<tr><td colspan="4" class="empty">`)
			h.text(v.EmptyMessage)
			h.raw("</td></tr>\n")
		}
		h.raw("</tbody>\n</table>\n")
		pager(h, v)
		h.raw("</section>\n")
	})
}

func userRow(h *htmlWriter, row view.UserRow) {
	h.raw("<tr>\n<td><a href=\"")
	h.url(row.DetailURL)
	h.raw(`">`)
	h.text(row.Name)
	h.raw("</a><br><small>")
	h.text(row.Username)
	h.raw("</small></td>\n")
	for _, cell := range []string{row.Email, row.Phone, row.CompanyName} {
		h.raw("<td>")
		h.text(cell)
		h.raw("</td>\n")
	}
	h.raw("</tr>\n")
}

func pager(h *htmlWriter, v view.ListView) {
	h.raw("<nav class=\"pager\">\n<p>")
	h.text(v.Footer())
	h.raw("</p>\n<span>\n")
	pageLink(h, v.PrevURL, "Previous")
	pageLink(h, v.NextURL, "Next")
	h.raw("</span>\n</nav>\n")
}

func pageLink(h *htmlWriter, href, label string) {
	if href == "" {
		return
	}
	h.raw(`<a href="`)
	h.url(href)
	h.raw(`" hx-get="`)
	h.url(href)
	h.raw(`" ` + resultsTarget + ` hx-push-url="true">`)
	h.text(label)
	h.raw("</a>\n")
}
