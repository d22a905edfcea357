package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/utils"
)

// menuImagePrefix is the bucket folder for menu photos
const menuImagePrefix = "menu"

// ImageService stores menu photos and resolves their public URLs
type ImageService interface {
	// UploadImage validates and stores a photo, returning its storage key
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL returns a URL for a stored photo
	GetImageURL(ctx context.Context, imageKey string) (string, error)

	// DeleteImage removes a stored photo
	DeleteImage(ctx context.Context, imageKey string) error
}

// S3ImageService implements ImageService on top of S3Interface
type S3ImageService struct {
	s3Service S3Interface
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with an S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{s3Service: s3Service}
	return imageServiceInstance
}

// GetImageService returns the image service, or nil when storage is not configured
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadImage validates and uploads a menu photo
func (s *S3ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(ctx, menuImagePrefix, fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s3Key, nil
}

// GetImageURL generates a presigned URL for a photo
func (s *S3ImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(ctx, imageKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return url, nil
}

// DeleteImage deletes a photo from S3
func (s *S3ImageService) DeleteImage(ctx context.Context, imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(ctx, imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// AttachImageURLs fills ImageURL for items with an uploaded photo.
// A failed lookup leaves the URL empty and is only logged.
func AttachImageURLs(ctx context.Context, images ImageService, items ...*models.MenuItem) {
	if images == nil {
		return
	}

	for _, item := range items {
		if item.ImageS3Key == nil || *item.ImageS3Key == "" {
			continue
		}
		url, err := images.GetImageURL(ctx, *item.ImageS3Key)
		if err != nil {
			log.Printf("Failed to resolve image for menu item %d: %v", item.ID, err)
			continue
		}
		item.ImageURL = url
	}
}
