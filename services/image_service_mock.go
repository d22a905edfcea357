package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/abhiraj-restaurant/restaurant-api/utils"
)

// MockImageService records menu photos in memory
type MockImageService struct {
	UploadErr error // returned by UploadImage after validation when set
	images    map[string]int64
	mu        sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{images: make(map[string]int64)}
}

// SetAsMockForTesting sets this mock as the global image service instance for testing
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates the photo like the real service and records its size
func (m *MockImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	imageKey := utils.ObjectKey(menuImagePrefix, "mock_"+fileHeader.Filename, 0)

	m.mu.Lock()
	m.images[imageKey] = fileHeader.Size
	m.mu.Unlock()

	return imageKey, nil
}

// GetImageURL returns a fake URL for a recorded photo
func (m *MockImageService) GetImageURL(ctx context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	if !m.ImageExists(imageKey) {
		return "", fmt.Errorf("image not found in mock storage: %s", imageKey)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", imageKey), nil
}

// DeleteImage forgets a recorded photo
func (m *MockImageService) DeleteImage(ctx context.Context, imageKey string) error {
	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()
	return nil
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[imageKey]
	return exists
}

// Count returns the number of recorded photos
func (m *MockImageService) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}
