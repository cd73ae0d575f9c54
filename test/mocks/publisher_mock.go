package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
)

// MockEventPublisher implements ports.EventPublisher for testing the outbox
// relay without a real RabbitMQ connection.
type MockEventPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedTypes    []string
	PublishedPayloads [][]byte

	// Error injection for testing error scenarios
	PublishError error

	PublishCallCount int
}

var _ ports.EventPublisher = (*MockEventPublisher)(nil)

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedTypes = append(m.PublishedTypes, eventType)
	m.PublishedPayloads = append(m.PublishedPayloads, payload)
	return nil
}

// Reset clears all tracking data.
func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedTypes = nil
	m.PublishedPayloads = nil
	m.PublishError = nil
	m.PublishCallCount = 0
}

// MockCache implements ports.Cache with a plain map and TTL bookkeeping.
type MockCache struct {
	mu sync.RWMutex

	data map[string]cacheEntry

	GetCalls []string
	SetCalls []string

	GetError error
	SetError error
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

var _ ports.Cache = (*MockCache)(nil)

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]cacheEntry)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, key)
	m.mu.Unlock()

	if m.GetError != nil {
		return "", false, m.GetError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.data[key]
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, key)

	if m.SetError != nil {
		return m.SetError
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	m.data[key] = cacheEntry{value: value, expiresAt: expiresAt}
	return nil
}

// MockTokenBlacklist implements ports.TokenBlacklist for middleware tests.
type MockTokenBlacklist struct {
	mu sync.RWMutex

	revoked map[string]bool

	CheckError error
}

var _ ports.TokenBlacklist = (*MockTokenBlacklist)(nil)

func NewMockTokenBlacklist() *MockTokenBlacklist {
	return &MockTokenBlacklist{revoked: make(map[string]bool)}
}

// Revoke marks a token hash as blacklisted for test setup.
func (m *MockTokenBlacklist) Revoke(tokenHash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenHash] = true
}

func (m *MockTokenBlacklist) IsBlacklisted(ctx context.Context, tokenHash string) (bool, error) {
	if m.CheckError != nil {
		return false, m.CheckError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revoked[tokenHash], nil
}
