package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"homeenergy/server/internal/aggregate"
	"homeenergy/server/internal/models"
	"homeenergy/server/internal/render"
	"homeenergy/server/internal/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Health pings the store and reports the import backlog.
func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.health.Ping(ctx); err != nil {
			h.logger.WithError(err).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	if h.imports == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	// a closed queue means imports would be rejected
	if h.imports.IsClosed() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "queued_batches": h.imports.Len()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "queued_batches": h.imports.Len()})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	data, err := h.loadDashboard(c)
	if err != nil {
		h.fail(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, data)
}

// loadDashboard keys the refresh by route, so the dashboard, its charts and
// the homes map can load side by side.
func (h *Handler) loadDashboard(c *gin.Context) (*views.DashboardData, error) {
	return h.dashboard.LoadView(c.Request.Context(), currentUser(c).UserID, c.FullPath())
}

func (h *Handler) GetConsumptionChart(c *gin.Context) {
	data, err := h.loadDashboard(c)
	if err != nil {
		h.fail(c, err, "Failed to load dashboard")
		return
	}
	h.writeChart(c, func() ([]byte, error) { return render.ConsumptionChart(data.Series, h.charts) })
}

func (h *Handler) GetApplianceChart(c *gin.Context) {
	data, err := h.loadDashboard(c)
	if err != nil {
		h.fail(c, err, "Failed to load dashboard")
		return
	}
	h.writeChart(c, func() ([]byte, error) { return render.ApplianceChart(data.ApplianceImpact, h.charts) })
}

func (h *Handler) writeChart(c *gin.Context, draw func() ([]byte, error)) {
	buf, err := draw()
	if errors.Is(err, render.ErrNoData) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to render chart")
		return
	}
	c.Data(http.StatusOK, "image/png", buf)
}

func (h *Handler) GetHomesMap(c *gin.Context) {
	data, err := h.loadDashboard(c)
	if err != nil {
		h.fail(c, err, "Failed to load homes map")
		return
	}
	c.JSON(http.StatusOK, render.HomesMap(data.Homes))
}

// yearParam reads ?year=, defaulting to the current year.
func yearParam(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return year, true
}

func (h *Handler) GetHistory(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	data, err := h.history.Load(c.Request.Context(), currentUser(c).UserID, year)
	if err != nil {
		h.fail(c, err, "Failed to load history")
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) ExportHistory(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	data, err := h.history.Load(c.Request.Context(), currentUser(c).UserID, year)
	if err != nil {
		h.fail(c, err, "Failed to load history")
		return
	}
	buf, err := render.HistoryWorkbook(data.Consumption, data.Totals, data.Bills)
	if err != nil {
		h.fail(c, err, "Failed to export history")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="energy-history-%d.xlsx"`, year))
	c.Data(http.StatusOK, xlsxContentType, buf)
}

func (h *Handler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), currentUser(c).UserID, req)
	if err != nil {
		h.fail(c, err, "Failed to get prediction")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetSeason(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month":  aggregate.NormalizeMonth(month),
		"season": aggregate.SeasonFor(month),
	})
}
