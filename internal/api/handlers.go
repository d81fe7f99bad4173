package api

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"laborstats/internal/dashboard"
	"laborstats/internal/engine"
	"laborstats/internal/models"
)

const chartWidth = 1100

// Handler serves the dashboard from the memoized data file
type Handler struct {
	handle *engine.TableHandle
}

// NewHandler creates a handler; the file is read on the first request
func NewHandler(handle *engine.TableHandle) *Handler {
	return &Handler{handle: handle}
}

// RegisterRoutes mounts the page, chart, downloads and the /api group
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetDashboard)
	e.GET("/chart.svg", h.GetChart)
	e.GET("/download.csv", h.DownloadCSV)
	e.GET("/download.xlsx", h.DownloadXLSX)
	e.GET("/health", h.HealthCheck)

	api := e.Group("/api")
	api.GET("/dashboard", h.GetView)
	api.POST("/reload", h.Reload)
}

// --- HELPERS ---

// parseFilters reads range, series and order from the query. Without any
// series parameter the defaults apply, unless the form was submitted with
// every box unchecked.
func parseFilters(c echo.Context) (dashboard.Filters, error) {
	f := dashboard.DefaultFilters()
	params := c.QueryParams()

	r, err := dashboard.ParseTimeRange(c.QueryParam("range"))
	if err != nil {
		return f, err
	}
	f.Range = r

	if series := params["series"]; len(series) > 0 || params.Has("submitted") {
		if f.Series, err = dashboard.ParseSeries(series); err != nil {
			return f, err
		}
	}

	if f.Order, err = dashboard.ParseSortOrder(c.QueryParam("order")); err != nil {
		return f, err
	}
	return f, nil
}

func isBadRequest(err error) bool {
	return errors.Is(err, dashboard.ErrUnknownTimeRange) ||
		errors.Is(err, dashboard.ErrUnknownSeries) ||
		errors.Is(err, dashboard.ErrUnknownOrder)
}

// loadError turns a load failure into a status and a user-facing message
func (h *Handler) loadError(err error) (int, string) {
	if errors.Is(err, engine.ErrDataNotFound) {
		return http.StatusServiceUnavailable, fmt.Sprintf(
			"Data file '%s' not found. Please run the fetcher first.", h.handle.Path())
	}
	log.Printf("Failed to load %s: %v", h.handle.Path(), err)
	return http.StatusInternalServerError, fmt.Sprintf("Data file '%s' could not be loaded: %v", h.handle.Path(), err)
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// filteredTable loads the cached table and applies the time range
func (h *Handler) filteredTable(c echo.Context) (*engine.Table, error) {
	f, err := parseFilters(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	table, err := h.handle.Get()
	if err != nil {
		status, msg := h.loadError(err)
		return nil, echo.NewHTTPError(status, msg)
	}
	return dashboard.FilterRange(table, f.Range)
}

// --- HANDLERS ---

// GetDashboard renders the HTML page
func (h *Handler) GetDashboard(c echo.Context) error {
	data := pageData{
		Title:    dashboard.PageTitle,
		DataPath: h.handle.Path(),
	}

	f, err := parseFilters(c)
	if err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, "dashboard", data)
	}

	table, err := h.handle.Get()
	if err != nil {
		status, msg := h.loadError(err)
		data.Error = msg
		return c.Render(status, "dashboard", data)
	}

	view, err := dashboard.Render(table, f)
	if err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusInternalServerError, "dashboard", data)
	}

	data.View = view
	data.Ranges = rangeOptions(f.Range)
	data.Series = seriesOptions(view.Selected)
	data.SortURL, data.ExportQuery = links(c.QueryParams(), f)

	if view.Chart != nil {
		var buf bytes.Buffer
		if err := dashboard.RenderChartSVG(&buf, view.Chart, chartWidth); err != nil {
			log.Printf("Chart render failed: %v", err)
			data.ChartError = "Chart unavailable: " + err.Error()
		} else {
			data.ChartSVG = template.HTML(buf.String())
		}
	}

	return c.Render(http.StatusOK, "dashboard", data)
}

// GetView returns the rendered view as JSON
func (h *Handler) GetView(c echo.Context) error {
	f, err := parseFilters(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	table, err := h.handle.Get()
	if err != nil {
		status, msg := h.loadError(err)
		return jsonError(c, status, msg)
	}

	view, err := dashboard.Render(table, f)
	if err != nil {
		if isBadRequest(err) {
			return jsonError(c, http.StatusBadRequest, err.Error())
		}
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// GetChart returns the chart as SVG; an empty selection has nothing to draw
func (h *Handler) GetChart(c echo.Context) error {
	f, err := parseFilters(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.handle.Get()
	if err != nil {
		status, msg := h.loadError(err)
		return echo.NewHTTPError(status, msg)
	}

	view, err := dashboard.Render(table, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if view.Chart == nil {
		return echo.NewHTTPError(http.StatusNotFound, view.Prompt)
	}

	var buf bytes.Buffer
	if err := dashboard.RenderChartSVG(&buf, view.Chart, chartWidth); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// DownloadCSV exports the time-filtered table
func (h *Handler) DownloadCSV(c echo.Context) error {
	table, err := h.filteredTable(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := dashboard.WriteCSV(&buf, table); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="labor_data.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// DownloadXLSX exports the time-filtered table as a workbook
func (h *Handler) DownloadXLSX(c echo.Context) error {
	table, err := h.filteredTable(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := dashboard.WriteXLSX(&buf, table); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="labor_data.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Reload drops the cached table and reads the file again
func (h *Handler) Reload(c echo.Context) error {
	table, err := h.handle.Reload()
	if err != nil {
		status, msg := h.loadError(err)
		return jsonError(c, status, msg)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"path": h.handle.Path(),
		"rows": table.Len(),
	})
}

// HealthCheck reports liveness without touching the data file
func (h *Handler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// --- PAGE DATA ---

type pageData struct {
	Title       string
	DataPath    string
	Error       string
	View        *models.View
	Ranges      []option
	Series      []option
	SortURL     string
	ExportQuery string
	ChartSVG    template.HTML
	ChartError  string
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// links returns the raw-table header link, which flips the sort order and
// keeps everything else, and the query for the download links
func links(params url.Values, f dashboard.Filters) (string, string) {
	sort := url.Values{}
	for k, v := range params {
		sort[k] = v
	}
	next := dashboard.Ascending
	if f.Order == dashboard.Ascending {
		next = dashboard.Descending
	}
	sort.Set("order", string(next))

	export := url.Values{}
	export.Set("range", string(f.Range))
	return "/?" + sort.Encode(), export.Encode()
}

func rangeOptions(current dashboard.TimeRange) []option {
	out := make([]option, 0, len(dashboard.TimeRanges))
	for _, r := range dashboard.TimeRanges {
		out = append(out, option{Value: string(r), Label: string(r), Selected: r == current})
	}
	return out
}

func seriesOptions(selected []string) []option {
	in := make(map[string]bool, len(selected))
	for _, s := range selected {
		in[s] = true
	}
	out := make([]option, 0, len(models.TrackedSeries))
	for _, s := range models.TrackedSeries {
		out = append(out, option{Value: s.Column, Label: s.Label, Selected: in[s.Column]})
	}
	return out
}
