package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/services"
)

// DistributionHandler handles physical-distribution HTTP requests
type DistributionHandler struct {
	distributionService *services.DistributionService
}

// NewDistributionHandler creates a new DistributionHandler
func NewDistributionHandler(distributionService *services.DistributionService) *DistributionHandler {
	return &DistributionHandler{
		distributionService: distributionService,
	}
}

// CreateDistribution handles POST /physical-distributions
func (h *DistributionHandler) CreateDistribution(c *gin.Context) {
	var input services.CreateDistributionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distribution, err := h.distributionService.CreateDistribution(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, distribution)
}

// GetDistributions handles GET /physical-distributions
func (h *DistributionHandler) GetDistributions(c *gin.Context) {
	distributions, err := h.distributionService.GetDistributions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, distributions)
}

// GetDistributionByID handles GET /physical-distributions/:id
func (h *DistributionHandler) GetDistributionByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	distribution, err := h.distributionService.GetDistribution(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// GetDistributionBySponsorship handles GET /physical-distributions/sponsorship/:sponsorshipId
func (h *DistributionHandler) GetDistributionBySponsorship(c *gin.Context) {
	sponsorshipID, err := primitive.ObjectIDFromHex(c.Param("sponsorshipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	distribution, err := h.distributionService.GetDistributionBySponsorship(c.Request.Context(), sponsorshipID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// UpdateDistribution handles PUT /physical-distributions/:id
func (h *DistributionHandler) UpdateDistribution(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var input services.UpdateDistributionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distribution, err := h.distributionService.UpdateDistribution(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// UpdateLocationStatus handles PATCH /physical-distributions/:id/locations/:locationId/status
func (h *DistributionHandler) UpdateLocationStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	locationID, err := primitive.ObjectIDFromHex(c.Param("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID format"})
		return
	}

	var request struct {
		Status          models.AllocationStatus `json:"status" binding:"required"`
		Notes           string                  `json:"notes,omitempty"`
		DistributedDate *time.Time              `json:"distributedDate,omitempty"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distribution, err := h.distributionService.UpdateLocationStatus(
		c.Request.Context(), id, locationID, request.Status, request.Notes, request.DistributedDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// DeleteDistribution handles DELETE /physical-distributions/:id
func (h *DistributionHandler) DeleteDistribution(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.distributionService.DeleteDistribution(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Distribution deleted successfully"})
}
