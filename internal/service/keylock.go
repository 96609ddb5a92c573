package service

import (
	"sort"
	"sync"
)

// KeyLock provides per-entity mutual exclusion. Engines hold the lock for the
// whole read-check-write section of an operation so two requests touching the
// same user, product, or growid never interleave.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyLock) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key and returns its unlock func
func (k *KeyLock) Lock(key string) func() {
	m := k.get(key)
	m.Lock()
	return m.Unlock
}

// LockMany acquires mutexes for all keys in sorted order. Every caller uses
// the same global ordering, so overlapping key sets cannot deadlock.
func (k *KeyLock) LockMany(keys ...string) func() {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	unlocks := make([]func(), 0, len(sorted))
	for _, key := range sorted {
		m := k.get(key)
		m.Lock()
		unlocks = append(unlocks, m.Unlock)
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
