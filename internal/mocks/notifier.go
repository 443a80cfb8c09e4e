package mocks

import (
	"context"
	"sync"
)

// Notification is one recorded notify call
type Notification struct {
	RecipientID string
	Message     string
}

// MockNotifier records notifications for assertions
type MockNotifier struct {
	mu   sync.Mutex
	Sent []Notification
}

// NewMockNotifier creates an empty notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify records the notification
func (m *MockNotifier) Notify(ctx context.Context, recipientID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, Notification{RecipientID: recipientID, Message: message})
}

// SentTo returns the notifications delivered to one recipient
func (m *MockNotifier) SentTo(recipientID string) []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Notification
	for _, n := range m.Sent {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}
