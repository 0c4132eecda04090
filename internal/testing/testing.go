// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/desertthunder/adx/internal/models"
)

// MockAdsService is a test double for [services.AdsService] with fixed,
// injectable responses and call counting.
type MockAdsService struct {
	mu sync.Mutex

	AuthURLValue string

	ExchangeGrant *models.TokenGrant
	ExchangeErr   error

	RefreshGrant *models.TokenGrant
	RefreshErr   error

	MusicValid bool
	MusicErr   error

	Receipt   *models.AdReceipt
	SubmitErr error

	ExchangeCalls []string
	RefreshCalls  []string
	MusicCalls    []string
	SubmitCalls   []models.AdDraft

	// MusicGate, when set, blocks each ValidateMusicID call until the gate
	// closes, letting tests hold a remote validation in flight.
	MusicGate chan struct{}

	// SubmitGate does the same for SubmitAd.
	SubmitGate chan struct{}
}

func (m *MockAdsService) Name() string { return "mock" }

func (m *MockAdsService) AuthURL(state string) string {
	if m.AuthURLValue != "" {
		return m.AuthURLValue + "?state=" + state
	}
	return "https://ads.example.com/authorize?state=" + state
}

func (m *MockAdsService) ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error) {
	m.mu.Lock()
	m.ExchangeCalls = append(m.ExchangeCalls, code)
	m.mu.Unlock()

	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.ExchangeGrant, nil
}

func (m *MockAdsService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error) {
	m.mu.Lock()
	m.RefreshCalls = append(m.RefreshCalls, refreshToken)
	m.mu.Unlock()

	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.RefreshGrant, nil
}

func (m *MockAdsService) ValidateMusicID(ctx context.Context, musicID string) (bool, error) {
	m.mu.Lock()
	m.MusicCalls = append(m.MusicCalls, musicID)
	gate := m.MusicGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	if m.MusicErr != nil {
		return false, m.MusicErr
	}
	return m.MusicValid, nil
}

func (m *MockAdsService) SubmitAd(ctx context.Context, draft models.AdDraft, accessToken string) (*models.AdReceipt, error) {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, draft)
	gate := m.SubmitGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	return m.Receipt, nil
}

// MusicCallCount returns the number of remote music validations issued.
func (m *MockAdsService) MusicCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.MusicCalls)
}

// SubmitCallCount returns the number of remote submissions issued.
func (m *MockAdsService) SubmitCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SubmitCalls)
}

// MemoryStore is an in-memory implementation of the auth key-value port.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string

	// FailOps, when set, makes every operation return an error.
	FailOps bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOps {
		return "", errors.New("store unavailable")
	}
	return s.entries[key], nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOps {
		return errors.New("store unavailable")
	}
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOps {
		return errors.New("store unavailable")
	}
	delete(s.entries, key)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
