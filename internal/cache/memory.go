package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process Cache for local runs and tests, backed by an
// expirable LRU. The LRU holds a single TTL fixed at construction, so
// the per-call ttl argument is ignored; callers pass the same
// configured TTL everywhere, which keeps both backends equivalent.
type Memory struct {
	lru *expirable.LRU[string, string]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (m *Memory) GetString(_ context.Context, key string) (string, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *Memory) SetString(_ context.Context, key, value string, _ time.Duration) error {
	m.lru.Add(key, value)
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}
