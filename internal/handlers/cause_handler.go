package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/services"
)

// CauseHandler handles cause-related HTTP requests
type CauseHandler struct {
	causeService *services.CauseService
}

// NewCauseHandler creates a new CauseHandler
func NewCauseHandler(causeService *services.CauseService) *CauseHandler {
	return &CauseHandler{
		causeService: causeService,
	}
}

// GetCauses handles GET /causes
func (h *CauseHandler) GetCauses(c *gin.Context) {
	status := models.CauseStatus(c.Query("status"))
	category := c.Query("category")

	causes, err := h.causeService.GetCauses(c.Request.Context(), status, category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, causes)
}

// GetCauseByID handles GET /causes/:id. The response always carries the
// computed totalTotes/claimedTotes/availableTotes fields; with
// ?include=sponsorships the sponsorship documents come along too.
func (h *CauseHandler) GetCauseByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	includeSponsorships := false
	for _, inc := range strings.Split(c.Query("include"), ",") {
		if inc == "sponsorships" {
			includeSponsorships = true
		}
	}

	detail, err := h.causeService.GetCauseDetail(c.Request.Context(), id, includeSponsorships)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateCause handles POST /causes
func (h *CauseHandler) CreateCause(c *gin.Context) {
	var cause models.Cause
	if err := c.ShouldBindJSON(&cause); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatorID, _ := primitive.ObjectIDFromHex(c.GetString("userID"))
	created, err := h.causeService.CreateCause(c.Request.Context(), &cause, creatorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateCause handles PUT /causes/:id
func (h *CauseHandler) UpdateCause(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var cause models.Cause
	if err := c.ShouldBindJSON(&cause); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cause.ID = id

	updated, err := h.causeService.UpdateCause(c.Request.Context(), &cause)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ApproveCause handles PATCH /causes/:id/approve
func (h *CauseHandler) ApproveCause(c *gin.Context) {
	h.setStatus(c, models.CauseStatusApproved)
}

// RejectCause handles PATCH /causes/:id/reject
func (h *CauseHandler) RejectCause(c *gin.Context) {
	h.setStatus(c, models.CauseStatusRejected)
}

func (h *CauseHandler) setStatus(c *gin.Context, status models.CauseStatus) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	cause, err := h.causeService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cause)
}

// DeleteCause handles DELETE /causes/:id
func (h *CauseHandler) DeleteCause(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.causeService.DeleteCause(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cause deleted successfully"})
}
