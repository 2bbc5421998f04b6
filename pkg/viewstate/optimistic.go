// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
optimistic.go implements the optimistic-update-with-rollback pattern every
mutating operation in this repository goes through.

# Problem Statement

A user edit (add a task, change a due date, update a crop's status) should
appear in the view with no perceptible latency, even though its network
round-trip is still in flight. If the round-trip fails, the view must end
up exactly where it started, and if it succeeds, the server's response must
be folded in without erasing locally-known data the response omits (the
crop update endpoint, for example, never returns the joined field name).

# Solution

ApplyAndSync is a compensating-action helper parameterized by the three
moving parts:

	snapshot ──mutate──▶ tentative ──publish──▶ view updates instantly
	                         │
	                     network call
	                    ┌────┴─────┐
	                 success    failure
	                    │           │
	          reconcile(tentative,  publish(snapshot)  ← rollback
	            serverValue)
	                    │
	                 publish(final)

Reconcile owns the merge policy: replace the edited record wholesale, or
fold in only the fields the user actually changed, depending on what the
endpoint's response is known to omit.

# Concurrency

Only one mutation per entity instance should be in flight from a given
view. Two overlapping ApplyAndSync calls on the same store are not queued
or merged: the later call snapshots whatever is published at that moment
and last-write-wins. Acceptable for single-user, single-view usage.
*/
package viewstate

// ApplyAndSync publishes mutate(current) immediately, runs the network
// call, and then either publishes reconcile(tentative, serverValue) on
// success or restores the pre-mutation snapshot on failure.
//
// The returned error is the network call's error, surfaced so the caller
// can notify the user; by the time it returns, the store already holds the
// rolled-back snapshot.
func ApplyAndSync[T, R any](
	store *Store[T],
	mutate func(T) T,
	call func() (R, error),
	reconcile func(T, R) T,
) error {
	snapshot := store.Get()
	tentative := mutate(snapshot)
	store.Set(tentative)

	serverValue, err := call()
	if err != nil {
		store.Set(snapshot)
		return err
	}

	store.Set(reconcile(tentative, serverValue))
	return nil
}
