package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/middleware"
	"github.com/abhiraj-restaurant/restaurant-api/services"
	"github.com/abhiraj-restaurant/restaurant-api/utils"
)

// GetMenu handles GET /api/v1/menu - available items, optional ?category=
func GetMenu(c *gin.Context) {
	listMenu(c, true)
}

// AdminListMenu handles GET /api/v1/admin/menu - every item including unavailable ones
func AdminListMenu(c *gin.Context) {
	listMenu(c, false)
}

func listMenu(c *gin.Context, onlyAvailable bool) {
	ctx := c.Request.Context()

	items, err := services.NewMenuService(config.GetDB()).List(ctx, c.Query("category"), onlyAvailable)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	for i := range items {
		services.AttachImageURLs(ctx, services.GetImageService(), &items[i])
	}

	respondSuccess(c, http.StatusOK, items)
}

// GetMenuItem handles GET /api/v1/admin/menu/:id
func GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := services.NewMenuService(config.GetDB()).Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.AttachImageURLs(c.Request.Context(), services.GetImageService(), item)
	respondSuccess(c, http.StatusOK, item)
}

// CreateMenuItem handles POST /api/v1/admin/menu
func CreateMenuItem(c *gin.Context) {
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := services.NewMenuService(config.GetDB()).Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/v1/admin/menu/:id - partial update
func UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := services.NewMenuService(config.GetDB()).Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.AttachImageURLs(c.Request.Context(), services.GetImageService(), item)
	respondSuccess(c, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/admin/menu/:id. Placed orders are untouched.
func DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := services.NewMenuService(config.GetDB()).Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if images := services.GetImageService(); images != nil && item.ImageS3Key != nil {
		if err := images.DeleteImage(c.Request.Context(), *item.ImageS3Key); err != nil {
			log.Printf("[%s] Failed to delete image for menu item %d: %v", middleware.GetRequestID(c), item.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item deleted",
	})
}

// UploadMenuItemImage handles POST /api/v1/admin/menu/:id/image - multipart field "image"
func UploadMenuItemImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	images := services.GetImageService()
	if images == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_NOT_CONFIGURED", "Image storage is not configured")
		return
	}

	menu := services.NewMenuService(config.GetDB())
	ctx := c.Request.Context()

	// Check the item exists before storing anything
	if _, err := menu.Get(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "An image file is required in the \"image\" field")
		return
	}

	key, err := images.UploadImage(ctx, fileHeader)
	if err != nil {
		var fileErr *utils.FileUploadError
		if errors.As(err, &fileErr) {
			respondError(c, http.StatusBadRequest, fileErr.Code, fileErr.Message)
			return
		}
		log.Printf("[%s] Failed to upload image: %v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload image")
		return
	}

	item, previous, err := menu.SetImageKey(ctx, id, key)
	if err != nil {
		_ = images.DeleteImage(ctx, key)
		respondServiceError(c, err)
		return
	}

	if previous != "" && previous != key {
		if err := images.DeleteImage(ctx, previous); err != nil {
			log.Printf("[%s] Failed to delete replaced image %s: %v", middleware.GetRequestID(c), previous, err)
		}
	}

	services.AttachImageURLs(ctx, images, item)
	respondSuccess(c, http.StatusOK, item)
}
