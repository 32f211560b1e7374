package handler

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

var htmlContentType = []string{"text/html; charset=utf-8"}

// templRender adapts a templ component to gin's render.Render.
type templRender struct {
	ctx       context.Context
	component templ.Component
}

func (r templRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return r.component.Render(r.ctx, w)
}

func (r templRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if len(header["Content-Type"]) == 0 {
		header["Content-Type"] = htmlContentType
	}
}

// renderHTML writes component with the given status.
func renderHTML(c *gin.Context, status int, component templ.Component) {
	c.Render(status, templRender{ctx: c.Request.Context(), component: component})
}
