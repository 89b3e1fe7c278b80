// Package cache memoizes projection results keyed by a hash of their inputs.
// A projection is a pure function of plan, overlay and assets, so a hit is
// indistinguishable from recomputation.
package cache

import (
	"context"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// keyPrefix namespaces keys in shared stores and versions the encoding
const keyPrefix = "readiness:v1:"

type keyInput struct {
	Plan    domain.PlanInputs     `json:"p"`
	Overlay domain.ScenarioInputs `json:"o"`
	Assets  []domain.Asset        `json:"a"`
}

// Key derives a stable cache key from projection inputs
func Key(plan domain.PlanInputs, overlay domain.ScenarioInputs, assets []domain.Asset) (string, error) {
	data, err := json.Marshal(keyInput{Plan: plan, Overlay: overlay, Assets: assets})
	if err != nil {
		return "", err
	}
	return keyPrefix + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

func encode(result *domain.ProjectionResult) ([]byte, error) {
	return json.Marshal(result)
}

func decode(data []byte) (*domain.ProjectionResult, error) {
	var r domain.ProjectionResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MemoryCache is an in-process cache bounded by entry count. When full, the
// oldest entry is evicted.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string][]byte
	order      []string
	maxEntries int
}

// NewMemoryCache creates a cache holding at most maxEntries results
// (unbounded when maxEntries <= 0).
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		data:       make(map[string][]byte),
		maxEntries: maxEntries,
	}
}

// Get returns a private copy of the cached result
func (m *MemoryCache) Get(_ context.Context, key string) (*domain.ProjectionResult, bool, error) {
	m.mu.Lock()
	data, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	r, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, result *domain.ProjectionResult) error {
	data, err := encode(result)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = data
	for m.maxEntries > 0 && len(m.order) > m.maxEntries {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.data, oldest)
	}
	return nil
}

// Len returns the number of cached entries
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
