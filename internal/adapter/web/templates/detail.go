package templates

import (
	"github.com/a-h/templ"

	"user-directory/internal/adapter/web/view"
)

// DetailPage renders a user detail page or its not-found variant.
func DetailPage(v view.DetailView) templ.Component {
	return layout(v.Title, component(func(h *htmlWriter) {
		if !v.Found {
			h.raw(`<p class="error">`)
			h.text(v.Message)
			h.raw("</p>\n")
			backLink(h, v.BackURL, "Go Back to User List")
			return
		}

		h.raw("<header>\n")
		backLink(h, v.BackURL, "Back to Users")
		h.raw("<h1>")
		h.text(v.Title)
		h.raw("</h1>\n</header>\n")
		for _, s := range v.Sections {
			section(h, s)
		}
	}))
}

func section(h *htmlWriter, s view.Section) {
	h.raw("<section>\n<h2>")
	h.text(s.Heading)
	h.raw("</h2>\n<dl>\n")
	for _, f := range s.Fields {
		h.raw("<dt>")
		h.text(f.Label)
		h.raw("</dt>\n<dd>")
		if f.Href != "" {
			h.raw(`<a href="`)
			h.url(f.Href)
			h.raw(`" target="_blank" rel="noopener noreferrer">`)
			h.text(f.Value)
			h.raw("</a>")
		} else {
			h.text(f.Value)
		}
		h.raw("</dd>\n")
	}
	h.raw("</dl>\n</section>\n")
}
