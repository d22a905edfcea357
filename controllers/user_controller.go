package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

// GetMyProfile handles GET /api/v1/users/me - the authenticated caller's profile
func GetMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	respondSuccess(c, http.StatusOK, user)
}

// SeedDatabase handles POST /api/v1/seed - creates the demo accounts and menu
func SeedDatabase(c *gin.Context) {
	result, err := services.SeedDatabase(c.Request.Context(), config.GetDB())
	if err != nil {
		respondDatabaseError(c, "Failed to seed database", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database seeded successfully",
		"data":    result,
	})
}
