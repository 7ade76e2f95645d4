package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homeenergy/server/internal/models"
)

// ImportRequest carries loosely typed consumption rows for a bulk import.
type ImportRequest struct {
	Rows []map[string]any `json:"rows" binding:"required"`
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) ListHomes(c *gin.Context) {
	homes, err := h.homes.List(c.Request.Context(), currentUser(c).UserID)
	if err != nil {
		h.fail(c, err, "Failed to get homes")
		return
	}
	c.JSON(http.StatusOK, homes)
}

func (h *Handler) CreateHome(c *gin.Context) {
	var req models.HomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	home, err := h.homes.Create(c.Request.Context(), currentUser(c).UserID, req)
	if err != nil {
		h.fail(c, err, "Failed to create home")
		return
	}
	c.JSON(http.StatusCreated, home)
}

func (h *Handler) UpdateHome(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.HomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	home, err := h.homes.Update(c.Request.Context(), currentUser(c).UserID, id, req)
	if err != nil {
		h.fail(c, err, "Failed to update home")
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *Handler) DeleteHome(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.homes.Delete(c.Request.Context(), currentUser(c).UserID, id); err != nil {
		h.fail(c, err, "Failed to delete home")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GeocodeHomes(c *gin.Context) {
	updated, err := h.homes.Geocode(c.Request.Context(), currentUser(c).UserID)
	if err != nil {
		h.fail(c, err, "Failed to geocode homes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) ListAppliances(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	appliances, err := h.homes.ListAppliances(c.Request.Context(), currentUser(c).UserID, id)
	if err != nil {
		h.fail(c, err, "Failed to get appliances")
		return
	}
	c.JSON(http.StatusOK, appliances)
}

func (h *Handler) AddAppliance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.ApplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appliance, err := h.homes.AddAppliance(c.Request.Context(), currentUser(c).UserID, id, req)
	if err != nil {
		h.fail(c, err, "Failed to add appliance")
		return
	}
	c.JSON(http.StatusCreated, appliance)
}

func (h *Handler) AddConsumption(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.ConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	record, bill, err := h.homes.AddConsumption(c.Request.Context(), currentUser(c).UserID, id, req)
	if err != nil {
		h.fail(c, err, "Failed to add consumption")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"consumption": record, "bill": bill})
}

func (h *Handler) ImportConsumption(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	queued, err := h.homes.ImportConsumption(c.Request.Context(), currentUser(c).UserID, id, req.Rows)
	if err != nil {
		h.fail(c, err, "Failed to import consumption")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}

func (h *Handler) MarkBillPaid(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	bill, err := h.homes.MarkBillPaid(c.Request.Context(), currentUser(c).UserID, id)
	if err != nil {
		h.fail(c, err, "Failed to mark bill as paid")
		return
	}
	c.JSON(http.StatusOK, bill)
}
