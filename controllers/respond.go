package controllers

import (
	"log"
	"net/http"

	"journal-review-api/config"
	"journal-review-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer errors onto the HTTP error contract:
// {error, message} plus a details array for validation failures. Unexpected
// errors become a 500 with the message suppressed outside development mode.
func respondError(c *gin.Context, err error) {
	svcErr, ok := services.AsServiceError(err)
	if !ok {
		svcErr = services.InternalError("Unexpected error", err)
	}

	var status int
	var category string

	switch svcErr.Kind {
	case services.KindValidation:
		status = http.StatusBadRequest
		category = "Validation Error"
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
		category = "Authentication Error"
	case services.KindForbidden:
		status = http.StatusForbidden
		category = "Access Forbidden"
	case services.KindNotFound:
		status = http.StatusNotFound
		category = "Not Found"
	case services.KindConflict:
		status = http.StatusConflict
		category = "Conflict"
	default:
		status = http.StatusInternalServerError
		category = "Internal Server Error"
	}

	body := gin.H{
		"error":   category,
		"message": svcErr.Message,
	}
	if len(svcErr.Details) > 0 {
		body["details"] = svcErr.Details
	}

	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		if !config.IsDevelopment() {
			body["message"] = "An unexpected error occurred"
		}
	}

	c.JSON(status, body)
}

// respondValidation is a shortcut for controller-level input errors.
func respondValidation(c *gin.Context, message string) {
	respondError(c, services.ValidationError(message))
}
