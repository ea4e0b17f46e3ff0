package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
)

// production is set from config at router setup; in production the detail of
// 500-class errors is suppressed from response bodies.
var production bool

// SetProductionMode configures error-detail suppression
func SetProductionMode(on bool) {
	production = on
}

// respondError translates a service error to its HTTP status and body.
// All handlers funnel failures through here so nothing is silently swallowed.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)

	message := err.Error()
	if status == http.StatusInternalServerError && production {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else {
			message = "internal server error"
		}
	}

	c.JSON(status, gin.H{"error": message})
}
