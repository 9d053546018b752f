package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/filter"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/model"
	"oompa/backend/internal/service"
	"oompa/backend/internal/trigger"
)

const imageCacheMaxAge = 86400 // 1 day

type CatalogHandler struct {
	list     service.ListService
	details  service.DetailService
	images   service.ImageService
	renderer service.DescriptionRenderer
	trigger  *trigger.Trigger
	view     *trigger.DetailView
}

func NewCatalogHandler(
	list service.ListService,
	details service.DetailService,
	images service.ImageService,
	renderer service.DescriptionRenderer,
	tr *trigger.Trigger,
	view *trigger.DetailView,
) *CatalogHandler {
	return &CatalogHandler{
		list:     list,
		details:  details,
		images:   images,
		renderer: renderer,
		trigger:  tr,
		view:     view,
	}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/oompas", h.List)
	g.POST("/oompas/next", h.Next)
	g.GET("/oompas/:id", h.Detail)
	g.GET("/oompas/:id/image", h.Image)
	g.GET("/view/detail", h.CurrentDetail)
}

type oompaResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Profession string `json:"profession"`
	ImageURL   string `json:"imageUrl"`
}

type filtersResponse struct {
	Name       string `json:"name"`
	Profession string `json:"profession"`
	Query      string `json:"q"`
}

type listResponse struct {
	Items       []oompaResponse `json:"items"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	HasMore     bool            `json:"hasMore"`
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
	Filters     filtersResponse `json:"filters"`
	ScrollArmed bool            `json:"scrollArmed"`
	LastRefresh *string         `json:"lastRefresh,omitempty"`
}

type detailResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	FullName    string  `json:"fullName"`
	Profession  string  `json:"profession"`
	Gender      string  `json:"gender"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Email       string  `json:"email,omitempty"`
	Country     string  `json:"country,omitempty"`
	Age         int     `json:"age,omitempty"`
	Height      int     `json:"height,omitempty"`
	FetchedAt   *string `json:"fetchedAt,omitempty"`
}

type detailViewResponse struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Detail *detailResponse `json:"detail,omitempty"`
}

// List returns the accumulated catalog list.
// @Summary List catalog entities
// @Description Activates the list view: serves the cached list while fresh, otherwise requests page 1. Items are narrowed by the filters.
// @Tags oompas
// @Produce json
// @Param name query string false "Name filter (case-insensitive substring)"
// @Param profession query string false "Profession filter (case-insensitive substring)"
// @Param q query string false "Free-text query, used only when name and profession are empty"
// @Success 200 {object} listResponse
// @Router /api/oompas [get]
func (h *CatalogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	criteria := parseCriteria(c)
	h.trigger.UpdateFilters(criteria)

	if _, err := h.trigger.Activate(ctx); err != nil {
		logger.Warn("list activation failed", "module", "handler", "action", "fetch", "resource", "list", "result", "failed", "error", err)
	}

	return c.JSON(http.StatusOK, h.listProjection(criteria))
}

// Next requests the next page, as when the end of the list becomes visible.
// @Summary Load next page
// @Description Requests the next page when scrolling is armed and more pages exist. Nothing is requested while any filter is set. Remote failures are reported in the status field.
// @Tags oompas
// @Produce json
// @Param name query string false "Name filter"
// @Param profession query string false "Profession filter"
// @Param q query string false "Free-text query"
// @Success 200 {object} listResponse
// @Failure 409 {object} errorResponse
// @Router /api/oompas/next [post]
func (h *CatalogHandler) Next(c echo.Context) error {
	ctx := c.Request().Context()
	criteria := parseCriteria(c)
	h.trigger.UpdateFilters(criteria)

	if criteria.Active() {
		logger.Debug("next page skipped while filtering", "module", "handler", "action", "scroll", "resource", "list", "result", "skipped")
		return c.JSON(http.StatusOK, h.listProjection(criteria))
	}

	issued, err := h.trigger.SentinelVisible(ctx)
	if err != nil {
		logger.Warn("next page failed", "module", "handler", "action", "fetch", "resource", "list", "result", "failed", "error", err)
	}
	if !issued && h.list.State().Status == cache.StatusLoading {
		return writeServiceError(c, service.ErrFetchInProgress)
	}

	return c.JSON(http.StatusOK, h.listProjection(criteria))
}

// Detail shows a single entity.
// @Summary Get entity detail
// @Description Serves the cached detail while fresh, otherwise fetches it. The description passes through the configured trust boundary.
// @Tags oompas
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} detailResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/oompas/{id} [get]
func (h *CatalogHandler) Detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}

	detail, err := h.view.Show(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	var fetchedAt *time.Time
	if entry, ok := h.details.Lookup(id); ok {
		fetchedAt = &entry.FetchedAt
	}
	return c.JSON(http.StatusOK, h.toDetailResponse(detail, fetchedAt))
}

// Image proxies the entity image.
// @Summary Get entity image
// @Description Proxies the image of a cached entity
// @Tags oompas
// @Produce octet-stream
// @Param id path int true "Entity ID"
// @Success 200 {file} binary
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/oompas/{id}/image [get]
func (h *CatalogHandler) Image(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeServiceError(c, err)
	}

	result, err := h.images.Fetch(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFetch) {
			c.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		}
		return writeServiceError(c, err)
	}

	logger.Debug("image proxied", "module", "handler", "action", "fetch", "resource", "image", "result", "ok", "id", id, "content_type", strings.ToLower(result.ContentType))
	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", imageCacheMaxAge))
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	return c.Blob(http.StatusOK, result.ContentType, result.Data)
}

// CurrentDetail returns what the detail view shows right now.
// @Summary Current detail view
// @Tags oompas
// @Produce json
// @Success 200 {object} detailViewResponse
// @Router /api/view/detail [get]
func (h *CatalogHandler) CurrentDetail(c echo.Context) error {
	snap := h.view.Current()
	resp := detailViewResponse{Status: string(snap.Status)}
	if snap.ID > 0 {
		resp.ID = formatID(snap.ID)
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	if snap.Detail != nil {
		var fetchedAt *time.Time
		if entry, ok := h.details.Lookup(snap.ID); ok {
			fetchedAt = &entry.FetchedAt
		}
		d := h.toDetailResponse(*snap.Detail, fetchedAt)
		resp.Detail = &d
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) listProjection(criteria filter.Criteria) listResponse {
	state := h.list.State()
	visible := filter.ApplyCriteria(state.Items, criteria)

	resp := listResponse{
		Items:       make([]oompaResponse, 0, len(visible)),
		Total:       len(state.Items),
		Page:        state.Page,
		HasMore:     state.HasMore,
		Status:      string(state.Status),
		Filters:     filtersResponse{Name: criteria.Name, Profession: criteria.Profession, Query: criteria.Query},
		ScrollArmed: h.trigger.Armed() && !criteria.Active(),
		LastRefresh: formatTimePtr(state.LastRefresh),
	}
	if state.Status == cache.StatusFailed {
		if err := h.list.LastError(); err != nil {
			resp.Error = err.Error()
		}
	}
	for _, item := range visible {
		resp.Items = append(resp.Items, toOompaResponse(item))
	}
	return resp
}

func (h *CatalogHandler) toDetailResponse(d model.OompaDetail, fetchedAt *time.Time) detailResponse {
	return detailResponse{
		ID:          formatID(d.ID),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		FullName:    d.FullName(),
		Profession:  d.Profession,
		Gender:      d.Gender,
		Description: h.renderer.Render(d.Description),
		ImageURL:    imageURL(d.ID),
		Email:       d.Email,
		Country:     d.Country,
		Age:         d.Age,
		Height:      d.Height,
		FetchedAt:   formatTimePtr(fetchedAt),
	}
}

func toOompaResponse(o model.Oompa) oompaResponse {
	return oompaResponse{
		ID:         formatID(o.ID),
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		FullName:   o.FullName(),
		Profession: o.Profession,
		ImageURL:   imageURL(o.ID),
	}
}

func imageURL(id int64) string {
	return "/api/oompas/" + formatID(id) + "/image"
}
