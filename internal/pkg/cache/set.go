// Package cache provides typed in-process caches for calculated results.
// The tracker runs as a single process against a local SQLite file, so results
// are cached in memory rather than in an external store; eviction is handled
// by go-cache's janitor.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// ErrMiss is returned on a cache miss.
var ErrMiss = errors.New("cache miss")

type Set[T any] struct {
	// m prevents duplicate calculation in MutexGetSet
	m sync.Mutex

	c      *gocache.Cache
	prefix string
}

func NewSet[T any](prefix string) *Set[T] {
	return &Set[T]{
		c:      gocache.New(gocache.NoExpiration, 10*time.Minute),
		prefix: prefix + "#",
	}
}

func (s *Set[T]) key(key string) string {
	return s.prefix + key
}

func (s *Set[T]) Get(key string, dest *T) error {
	v, ok := s.c.Get(s.key(key))
	if !ok {
		return ErrMiss
	}
	*dest = v.(T)
	return nil
}

func (s *Set[T]) Set(key string, value T, expire time.Duration) error {
	s.c.Set(s.key(key), value, expire)
	return nil
}

func (s *Set[T]) Delete(key string) error {
	s.c.Delete(s.key(key))
	return nil
}

func (s *Set[T]) Flush() error {
	s.c.Flush()
	return nil
}

// MutexGetSet gets value from cache and writes to dest, or if the key does not
// exist, executes valueFunc serially, stores the result and writes it to dest.
// The first return value reports whether the value had to be calculated.
func (s *Set[T]) MutexGetSet(key string, dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	if err := s.Get(key, dest); err == nil {
		return false, nil
	}

	s.m.Lock()
	defer s.m.Unlock()

	// lost the race: someone else populated the key while we waited
	if err := s.Get(key, dest); err == nil {
		return false, nil
	}

	value, err := valueFunc()
	if err != nil {
		return false, err
	}
	if err := s.Set(key, value, expire); err != nil {
		return false, err
	}
	*dest = value
	return true, nil
}
