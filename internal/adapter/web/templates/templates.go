// Package templates renders the directory pages as templ components.
package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

const stylesheet = `body { font-family: system-ui, sans-serif; background: #f9fafb; color: #1f2937; margin: 0; }
main { max-width: 72rem; margin: 2rem auto; background: #fff; padding: 1.5rem; border-radius: .75rem; }
table { width: 100%; border-collapse: collapse; }
th { text-align: left; font-size: .75rem; text-transform: uppercase; color: #6b7280; background: #f9fafb; padding: .75rem 1rem; }
td { padding: 1rem; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
td small, dt { color: #6b7280; }
.empty { text-align: center; color: #6b7280; padding: 4rem 1rem; }
.error { color: #ef4444; font-size: 1.25rem; }
form { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
input[type=text] { flex: 1; padding: .75rem; border: 1px solid #e5e7eb; border-radius: .5rem; }
button { background: #2563eb; color: #fff; border: 0; padding: .75rem 2rem; border-radius: .5rem; }
nav.pager { display: flex; justify-content: space-between; margin-top: 1.5rem; }
dl { display: grid; grid-template-columns: max-content 1fr; gap: .5rem 1.5rem; }
dd { margin: 0; font-weight: 500; }`

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

// raw writes trusted markup as is.
func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s escaped for element content or a quoted attribute value.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// url writes s as an escaped attribute value after URL sanitization.
func (h *htmlWriter) url(s string) {
	h.text(string(templ.URL(s)))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// component turns a markup function into a templ.Component.
func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// layout wraps body in the page shell.
func layout(title string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n<title>")
		h.text(title)
		h.raw("</title>\n<script src=\"")
		h.url(htmxScript)
		h.raw("\" defer></script>\n<style>\n")
		h.raw(stylesheet)
		h.raw("\n</style>\n</head>\n<body>\n<main>\n")
		h.component(body)
		h.raw("</main>\n</body>\n</html>\n")
	})
}

// backLink renders the link back to the directory.
func backLink(h *htmlWriter, href, label string) {
	h.raw(`<a href="`)
	h.url(href)
	h.raw(`">&larr; `)
	h.text(label)
	h.raw("</a>\n")
}

// ErrorPage renders a generic error page for status.
func ErrorPage(status int, message string) templ.Component {
	title := http.StatusText(status)
	return layout(title, component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(title)
		h.raw("</h1>\n<p class=\"error\">")
		h.text(message)
		h.raw("</p>\n")
		backLink(h, "/", "Go Back to User List")
	}))
}
