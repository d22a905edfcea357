package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/abhiraj-restaurant/restaurant-api/utils"
)

// MockS3Service keeps objects in memory
type MockS3Service struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{objects: make(map[string][]byte)}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadFile stores the file content under a deterministic key
func (m *MockS3Service) UploadFile(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	s3Key := utils.ObjectKey(prefix, "mock_"+fileHeader.Filename, 0)

	m.mu.Lock()
	m.objects[s3Key] = content
	m.mu.Unlock()

	return s3Key, nil
}

// GetPresignedURL returns a fake URL for a stored object
func (m *MockS3Service) GetPresignedURL(ctx context.Context, s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}

	if !m.FileExists(s3Key) {
		return "", fmt.Errorf("file not found in mock S3: %s", s3Key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", s3Key), nil
}

// DeleteFile removes a stored object
func (m *MockS3Service) DeleteFile(ctx context.Context, s3Key string) error {
	m.mu.Lock()
	delete(m.objects, s3Key)
	m.mu.Unlock()
	return nil
}

// FileExists checks if a key exists in mock storage
func (m *MockS3Service) FileExists(s3Key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[s3Key]
	return exists
}

// Count returns the number of stored objects
func (m *MockS3Service) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
