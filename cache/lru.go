package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

// LRUStore is the in-process default answer cache.
type LRUStore struct {
	cache *lru.Cache
}

func NewLRU(size int) (*LRUStore, error) {
	if size <= 0 {
		size = 256
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUStore{cache: c}, nil
}

func (s *LRUStore) Get(_ context.Context, query string) (string, bool) {
	v, ok := s.cache.Get(Key(query))
	if !ok {
		return "", false
	}
	response, ok := v.(string)
	return response, ok
}

func (s *LRUStore) Set(_ context.Context, query, response string) {
	s.cache.Add(Key(query), response)
}
