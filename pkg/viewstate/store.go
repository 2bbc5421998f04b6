// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package viewstate holds the mutable view model for a single active view
// and the optimistic-mutation pattern that edits it.
//
// Each view owns exactly one Store instance and is its only writer; stores
// are never shared across views. Publishing is always a whole-value
// replacement, never a merge, so observers see either the previous complete
// view or the next complete view and nothing in between.
package viewstate

import "sync"

// Store holds the current value of one view model and broadcasts every
// replacement to its subscribers.
//
// There is no diffing contract: Set delivers the full new value even when
// it equals the old one, and observers are expected to be idempotent on
// repeated identical values.
type Store[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewStore creates a store holding the given initial value.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the held value as one atomic step and notifies every
// subscriber synchronously with the new value.
func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	observers := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(value)
	}
}

// Subscribe registers an observer for future Set calls and returns its
// unsubscribe handle. Callers must drop the subscription when the view it
// feeds goes away, otherwise a stale load that resolves late would still
// be delivered to it.
func (s *Store[T]) Subscribe(observer func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = observer
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
