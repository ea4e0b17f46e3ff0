package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/services"
)

// SponsorshipHandler handles sponsorship-related HTTP requests
type SponsorshipHandler struct {
	sponsorshipService *services.SponsorshipService
}

// NewSponsorshipHandler creates a new SponsorshipHandler
func NewSponsorshipHandler(sponsorshipService *services.SponsorshipService) *SponsorshipHandler {
	return &SponsorshipHandler{
		sponsorshipService: sponsorshipService,
	}
}

// GetSponsorships handles GET /sponsorships
func (h *SponsorshipHandler) GetSponsorships(c *gin.Context) {
	status := models.SponsorshipStatus(c.Query("status"))

	sponsorships, err := h.sponsorshipService.GetSponsorships(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sponsorships)
}

// GetSponsorshipByID handles GET /sponsorships/:id
func (h *SponsorshipHandler) GetSponsorshipByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	sponsorship, err := h.sponsorshipService.GetSponsorship(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sponsorship)
}

// CreateSponsorship handles POST /sponsorships
func (h *SponsorshipHandler) CreateSponsorship(c *gin.Context) {
	var sponsorship models.Sponsorship
	if err := c.ShouldBindJSON(&sponsorship); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.sponsorshipService.CreateSponsorship(c.Request.Context(), &sponsorship)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateSponsorship handles PUT /sponsorships/:id
func (h *SponsorshipHandler) UpdateSponsorship(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var sponsorship models.Sponsorship
	if err := c.ShouldBindJSON(&sponsorship); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sponsorship.ID = id

	updated, err := h.sponsorshipService.UpdateSponsorship(c.Request.Context(), &sponsorship)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ApproveSponsorship handles PATCH /sponsorships/:id/approve
func (h *SponsorshipHandler) ApproveSponsorship(c *gin.Context) {
	h.setStatus(c, models.SponsorshipStatusApproved)
}

// RejectSponsorship handles PATCH /sponsorships/:id/reject
func (h *SponsorshipHandler) RejectSponsorship(c *gin.Context) {
	h.setStatus(c, models.SponsorshipStatusRejected)
}

func (h *SponsorshipHandler) setStatus(c *gin.Context, status models.SponsorshipStatus) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	sponsorship, err := h.sponsorshipService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sponsorship)
}

// DeleteSponsorship handles DELETE /sponsorships/:id
func (h *SponsorshipHandler) DeleteSponsorship(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.sponsorshipService.DeleteSponsorship(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sponsorship deleted successfully"})
}
