package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const singularKey = "value"

type Singular[T any] struct {
	m sync.Mutex

	c *gocache.Cache
}

func NewSingular[T any]() *Singular[T] {
	return &Singular[T]{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (s *Singular[T]) Get(dest *T) error {
	v, ok := s.c.Get(singularKey)
	if !ok {
		return ErrMiss
	}
	*dest = v.(T)
	return nil
}

func (s *Singular[T]) Set(value T, expire time.Duration) error {
	s.c.Set(singularKey, value, expire)
	return nil
}

func (s *Singular[T]) Delete() error {
	s.c.Delete(singularKey)
	return nil
}

func (s *Singular[T]) MutexGetSet(dest *T, valueFunc func() (T, error), expire time.Duration) (bool, error) {
	if err := s.Get(dest); err == nil {
		return false, nil
	}

	s.m.Lock()
	defer s.m.Unlock()

	if err := s.Get(dest); err == nil {
		return false, nil
	}

	value, err := valueFunc()
	if err != nil {
		return false, err
	}
	if err := s.Set(value, expire); err != nil {
		return false, err
	}
	*dest = value
	return true, nil
}
