package api

import (
	"foodindex/internal/engine"
	"foodindex/internal/session"
	"foodindex/internal/web"
	"log/slog"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/a-h/templ"
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	data     atomic.Pointer[engine.Dataset]
	sessions *session.Store
	logger   *slog.Logger
	metrics  *Metrics
}

// NewHandler starts without data; every dashboard route answers 503 until
// SetData is called.
func NewHandler(sessions *session.Store, logger *slog.Logger, metrics *Metrics) *Handler {
	return &Handler{sessions: sessions, logger: logger, metrics: metrics}
}

func (h *Handler) SetData(ds *engine.Dataset) {
	h.data.Store(ds)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.GetHealth)
	e.GET("/metrics", h.metrics.Handler())

	e.GET("/", h.GetDashboardPage, h.requireData, h.withSession)
	e.POST("/selection", h.PostSelection, h.requireData, h.withSession)

	api := e.Group("/api", h.requireData, h.withSession)
	api.GET("/options", h.GetOptions)
	api.GET("/dashboard", h.GetDashboard)
	api.PUT("/selection", h.PutSelection)
	api.GET("/raw", h.GetRaw)
}

// --- HANDLERS ---

func (h *Handler) GetHealth(c echo.Context) error {
	if h.data.Load() == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboardPage(c echo.Context) error {
	ds, st := dataset(c), state(c)

	view := ds.Dashboard(st.Resolve(ds), st.ShowRaw())
	h.metrics.observeRender("html", view)

	return echo.WrapHandler(templ.Handler(web.DashboardPage(view, st.TakeNotices())))(c)
}

// PostSelection applies the sidebar form. Only the controls present in the
// form are changed.
func (h *Handler) PostSelection(c echo.Context) error {
	ds, st := dataset(c), state(c)

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	if v, ok := form["subindex"]; ok && len(v) > 0 {
		h.warn(c, st, "subindex", st.SetSubindexChoice(ds, v[0]))
	}
	if v, ok := form["competing"]; ok && len(v) > 0 {
		h.warn(c, st, "competing", st.SetCompetingChoice(ds, v[0]))
	}
	if v, ok := form["show_raw"]; ok {
		st.SetShowRaw(slices.Contains(v, "on"))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, dataset(c).Options())
}

func (h *Handler) GetDashboard(c echo.Context) error {
	ds, st := dataset(c), state(c)

	view := ds.Dashboard(st.Resolve(ds), st.ShowRaw())
	h.metrics.observeRender("json", view)
	return c.JSON(http.StatusOK, view)
}

type selectionRequest struct {
	Subindex  *string `json:"subindex"`
	Competing *string `json:"competing"`
	ShowRaw   *bool   `json:"show_raw"`
}

type selectionResponse struct {
	Subindex  string   `json:"subindex"`
	Competing string   `json:"competing"`
	ShowRaw   bool     `json:"show_raw"`
	Warnings  []string `json:"warnings"`
}

// PutSelection changes any subset of the controls. Unknown column names fall
// back to the default and come back as warnings, not errors.
func (h *Handler) PutSelection(c echo.Context) error {
	ds, st := dataset(c), state(c)

	var req selectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid selection payload")
	}

	resp := selectionResponse{Warnings: []string{}}
	if req.Subindex != nil {
		if err := st.SetSubindexChoice(ds, *req.Subindex); err != nil {
			h.metrics.Fallbacks.WithLabelValues("subindex").Inc()
			resp.Warnings = append(resp.Warnings, err.Error())
		}
	}
	if req.Competing != nil {
		if err := st.SetCompetingChoice(ds, *req.Competing); err != nil {
			h.metrics.Fallbacks.WithLabelValues("competing").Inc()
			resp.Warnings = append(resp.Warnings, err.Error())
		}
	}
	if req.ShowRaw != nil {
		st.SetShowRaw(*req.ShowRaw)
	}

	sel := st.Resolve(ds)
	resp.Subindex, resp.Competing, resp.ShowRaw = sel.Subindex, sel.Competing, st.ShowRaw()
	return c.JSON(http.StatusOK, resp)
}

// GetRaw projects explicitly named columns, defaulting to the session's
// selection. Unlike the controls it does not coerce unknown names.
func (h *Handler) GetRaw(c echo.Context) error {
	ds, st := dataset(c), state(c)
	sel := st.Resolve(ds)

	subindex := queryOr(c, "subindex", sel.Subindex)
	competing := queryOr(c, "competing", sel.Competing)
	if !slices.Contains(ds.CompetingFields(), competing) {
		return apiError(errors.Wrapf(engine.FieldNotFoundError, "competing index %q", competing))
	}

	raw, err := engine.Project(ds.Subindices, subindex, ds.MainIndex, ds.MainIndexField(), competing)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, raw)
}

func queryOr(c echo.Context, name, fallback string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return fallback
}

func (h *Handler) warn(c echo.Context, st *session.State, control string, err error) {
	if err == nil {
		return
	}
	h.metrics.Fallbacks.WithLabelValues(control).Inc()
	h.logger.WarnContext(c.Request().Context(), "selection coerced to default",
		slog.String("control", control),
		slog.String("error", err.Error()),
	)
	st.AddNotice(err.Error())
}

func apiError(err error) error {
	if errors.Is(err, engine.FieldNotFoundError) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
