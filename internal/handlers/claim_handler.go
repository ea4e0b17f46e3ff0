package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/services"
)

// ClaimHandler handles claim-related HTTP requests
type ClaimHandler struct {
	claimService *services.ClaimService
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// CreateClaim handles POST /claims
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var claim models.Claim
	if err := c.ShouldBindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.claimService.CreateClaim(c.Request.Context(), &claim)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetClaims handles GET /claims
func (h *ClaimHandler) GetClaims(c *gin.Context) {
	status := models.ClaimStatus(c.Query("status"))

	claims, err := h.claimService.GetClaims(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

// GetClaimByID handles GET /claims/:id
func (h *ClaimHandler) GetClaimByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	claim, err := h.claimService.GetClaim(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

// GetClaimsByCause handles GET /claims/cause/:causeId
func (h *ClaimHandler) GetClaimsByCause(c *gin.Context) {
	causeID, err := primitive.ObjectIDFromHex(c.Param("causeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	claims, err := h.claimService.GetClaimsByCause(c.Request.Context(), causeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

// UpdateClaimStatus handles PATCH /claims/:id/status
func (h *ClaimHandler) UpdateClaimStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Status models.ClaimStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := h.claimService.UpdateStatus(c.Request.Context(), id, request.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}
