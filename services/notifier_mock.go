package services

import (
	"context"
	"sync"
)

// MockNotifier records notifications instead of delivering them
type MockNotifier struct {
	Err  error // returned from every Notify call when set
	sent []Notification
	mu   sync.RWMutex
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SetAsMockForTesting sets this mock as the global notifier for testing
func (m *MockNotifier) SetAsMockForTesting() {
	SetNotifier(m)
}

// Notify records the notification and returns Err
func (m *MockNotifier) Notify(ctx context.Context, n Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()
	return m.Err
}

// Sent returns a copy of the recorded notifications
func (m *MockNotifier) Sent() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent := make([]Notification, len(m.sent))
	copy(sent, m.sent)
	return sent
}

// Count returns the number of recorded notifications
func (m *MockNotifier) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sent)
}
