package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/middleware"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// statusForKind maps service error kinds to HTTP status codes
var statusForKind = map[services.ErrorKind]int{
	services.KindUnauthenticated: http.StatusUnauthorized,
	services.KindMissingField:    http.StatusBadRequest,
	services.KindInvalidField:    http.StatusBadRequest,
	services.KindUnavailable:     http.StatusBadRequest,
	services.KindConflict:        http.StatusConflict,
	services.KindNotFound:        http.StatusNotFound,
	services.KindInternal:        http.StatusInternalServerError,
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondErrorWithDetails(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// respondServiceError translates a service failure into the error envelope
func respondServiceError(c *gin.Context, err error) {
	var serviceErr *services.ServiceError
	if !errors.As(err, &serviceErr) {
		log.Printf("[%s] unexpected error: %v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	status, ok := statusForKind[serviceErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		log.Printf("[%s] %v", middleware.GetRequestID(c), serviceErr)
	}

	if serviceErr.Details != nil {
		respondErrorWithDetails(c, status, serviceErr.Code, serviceErr.Message, serviceErr.Details)
		return
	}
	respondError(c, status, serviceErr.Code, serviceErr.Message)
}

func respondBindError(c *gin.Context, err error) {
	respondErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", err.Error())
}

func respondDatabaseError(c *gin.Context, message string, err error) {
	log.Printf("[%s] %s: %v", middleware.GetRequestID(c), message, err)
	respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", message)
}

// parseIDParam reads the :id path parameter, responding 400 when it is not a positive integer
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated principal, responding 401 when absent
func currentUser(c *gin.Context) (*models.User, bool) {
	user, err := middleware.GetPrincipal(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return nil, false
	}
	return user, true
}

func appLocation() *time.Location {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg.Location()
	}
	return time.Local
}

func publicBaseURL() string {
	if cfg := config.GetConfig(); cfg != nil && cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	return "http://localhost:3000"
}
