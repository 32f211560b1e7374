package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory/internal/adapter/web/htmx"
	"user-directory/internal/adapter/web/templates"
	"user-directory/internal/adapter/web/view"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"
	"user-directory/pkg/security"
)

// PageHandler serves the server-rendered directory pages.
type PageHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler(uc user.Usecase, log *zap.Logger) *PageHandler {
	return &PageHandler{
		uc:  uc,
		log: log,
	}
}

// List handles GET /?q=&page=
func (h *PageHandler) List(c *gin.Context) {
	state := user.NewSearchState()
	state.Type(security.SanitizeSearchQuery(c.Query("q")))
	state.Commit()
	state.GoToPage(parsePage(c.Query("page")))

	h.renderList(c, state)
}

// Search handles GET /search?term=. It commits the typed term and sends the
// client back to the first page of the list.
func (h *PageHandler) Search(c *gin.Context) {
	state := user.NewSearchState()
	state.Type(security.SanitizeSearchQuery(c.Query("term")))
	state.Commit()

	target := view.ListURL(state.ActiveQuery, state.Page)
	if htmx.IsHTMXRequest(c.Request) {
		c.Header("HX-Push-Url", target)
		h.renderList(c, state)
		return
	}

	c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) renderList(c *gin.Context, state *user.SearchState) {
	resp, err := h.uc.ListUsers(c.Request.Context(), state.Request())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("list page failed", zap.Error(err))
		status := apperrors.StatusOf(err)
		renderHTML(c, status, templates.ErrorPage(status, errorMessage(err)))
		return
	}

	v := view.NewListView(resp, state.ActiveQuery)
	if htmx.IsHTMXRequest(c.Request) {
		renderHTML(c, http.StatusOK, templates.ListResults(v))
		return
	}
	renderHTML(c, http.StatusOK, templates.ListPage(v))
}

// Detail handles GET /user/:id. Unknown, unreachable and malformed ids all
// render the not-found page.
func (h *PageHandler) Detail(c *gin.Context) {
	var u *domain.User

	idStr := c.Param("id")
	id, err := security.ParseUserID(idStr)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
	} else {
		u = h.uc.FetchUser(c.Request.Context(), id)
	}

	status := http.StatusOK
	if u == nil {
		status = http.StatusNotFound
	}
	renderHTML(c, status, templates.DetailPage(view.NewDetailView(u)))
}

// NotFound renders the generic 404 page for unmatched routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	renderHTML(c, http.StatusNotFound, templates.ErrorPage(http.StatusNotFound, "The page you requested does not exist."))
}

// errorMessage returns the text shown to the user for a failed list request.
func errorMessage(err error) string {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Something went wrong. Please try again."
}

// parsePage returns the 1-based page number in raw, or 1 when raw is not a
// positive integer.
func parsePage(raw string) int64 {
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
