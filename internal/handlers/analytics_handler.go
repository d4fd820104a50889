package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/analytics"
	"github.com/shopsy-platform/service-analytics/internal/services"
)

// AnalyticsHandler serves the sales dashboard aggregates.
type AnalyticsHandler struct {
	reports *services.ReportService
	logger  *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(reports *services.ReportService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports, logger: logger}
}

// getReport parses the shared date-range/refresh query params, fetches the
// report and writes the error response itself on failure. The bool result
// reports whether the caller may proceed.
func (h *AnalyticsHandler) getReport(c *gin.Context) (*analytics.Report, bool, bool) {
	startDateStr := c.DefaultQuery("start_date", "")
	endDateStr := c.DefaultQuery("end_date", "")
	forceRefresh := c.Query("refresh") == "true"

	var startDate, endDate time.Time
	var err error
	if startDateStr != "" {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format, expected YYYY-MM-DD"})
			return nil, false, false
		}
	}
	if endDateStr != "" {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format, expected YYYY-MM-DD"})
			return nil, false, false
		}
		// End date is inclusive: cover the whole day.
		endDate = endDate.Add(24*time.Hour - time.Nanosecond)
	}

	report, fromCache, err := h.reports.GetReport(c.Request.Context(), startDate, endDate, forceRefresh)
	if err != nil {
		h.logger.Error("failed to build sales report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch sales orders from the order service"})
		return nil, false, false
	}
	return report, fromCache, true
}

// GetSalesReport returns the full sales report.
// @Summary Get sales report
// @Tags Analytics
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param refresh query bool false "Force refresh (bypass cache)"
// @Success 200 {object} analytics.Report
// @Router /analytics/sales [get]
func (h *AnalyticsHandler) GetSalesReport(c *gin.Context) {
	report, fromCache, ok := h.getReport(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":     report,
		"empty":      report.Empty,
		"from_cache": fromCache,
	})
}

// GetSummary returns the KPI summary block.
// @Summary Get sales summary
// @Tags Analytics
// @Success 200 {object} analytics.SummaryStats
// @Router /analytics/sales/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	report, fromCache, ok := h.getReport(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    report.Summary,
		"empty":      report.Empty,
		"from_cache": fromCache,
	})
}

// GetWeekly returns the week-by-week buckets with growth rates.
// @Summary Get weekly sales
// @Tags Analytics
// @Success 200 {array} analytics.WeekGrowth
// @Router /analytics/sales/weekly [get]
func (h *AnalyticsHandler) GetWeekly(c *gin.Context) {
	report, fromCache, ok := h.getReport(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weeks":      report.Weeks,
		"empty":      report.Empty,
		"from_cache": fromCache,
	})
}

// GetTopProducts returns the top products ranked by the requested metric.
// @Summary Get top products
// @Tags Analytics
// @Param metric query string false "Ranking metric: revenue, orders or quantity" default(revenue)
// @Param n query int false "Number of products" default(10)
// @Success 200 {array} analytics.ProductSummary
// @Router /analytics/sales/top-products [get]
func (h *AnalyticsHandler) GetTopProducts(c *gin.Context) {
	metric := c.DefaultQuery("metric", "revenue")
	n := analytics.DefaultTopN
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid n, expected a positive integer"})
			return
		}
		n = parsed
	}

	report, fromCache, ok := h.getReport(c)
	if !ok {
		return
	}

	var top []analytics.ProductSummary
	switch metric {
	case "revenue":
		top = analytics.TopNByRevenue(report.Products, n)
	case "orders":
		top = analytics.TopNByOrderCount(report.Products, n)
	case "quantity":
		top = analytics.TopNByQuantity(report.Products, n)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid metric, expected revenue, orders or quantity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metric":       metric,
		"top_products": top,
		"empty":        report.Empty,
		"from_cache":   fromCache,
	})
}

// GetTable returns one page of the detailed order table.
// @Summary Get order table page
// @Tags Analytics
// @Param sort_by query string false "Sort column"
// @Param direction query string false "Sort direction: asc or desc" default(asc)
// @Param page query int false "Page number (1-based)" default(1)
// @Router /analytics/sales/table [get]
func (h *AnalyticsHandler) GetTable(c *gin.Context) {
	sortBy := c.Query("sort_by")
	direction := analytics.Direction(c.DefaultQuery("direction", string(analytics.Ascending)))
	if direction != analytics.Ascending && direction != analytics.Descending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid direction, expected asc or desc"})
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page, expected a positive integer"})
			return
		}
		page = parsed
	}

	report, fromCache, ok := h.getReport(c)
	if !ok {
		return
	}

	rows := report.Orders
	if sortBy != "" {
		rows = analytics.SortBy(rows, sortBy, direction)
	}

	totalPages := analytics.TotalPages(len(rows))
	state := analytics.TableState{SortColumn: sortBy, SortDirection: direction}.WithPage(page, totalPages)

	c.JSON(http.StatusOK, gin.H{
		"rows":        analytics.Page(rows, state.Page),
		"page":        state.Page,
		"page_size":   analytics.PageSize,
		"total_pages": totalPages,
		"total_rows":  len(rows),
		"sort_by":     sortBy,
		"direction":   direction,
		"empty":       report.Empty,
		"from_cache":  fromCache,
	})
}

// ExportCSV streams the order table as a CSV download.
// @Summary Export sales report as CSV
// @Tags Analytics
// @Produce text/csv
// @Router /analytics/sales/export [get]
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	report, _, ok := h.getReport(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("sales-report-%s.csv", time.Now().UTC().Format("2006-01-02"))
	body := analytics.OrderTableCSV(report.Orders)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
