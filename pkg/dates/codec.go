// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dates converts between the three date representations the system
// uses: the backend wire form (YYYY-MM-DDT00:00:00), the display form
// (DD/MM/YYYY), and derived day counts (days since planting, days until
// harvest).
//
// This package is the only place date parsing, formatting, or arithmetic
// happens. Everything here is pure: no clocks are read, callers pass "now".
package dates

import (
	"fmt"
	"regexp"
	"time"
)

// ISOLayout is the wire format for all dates crossing the backend boundary.
const ISOLayout = "2006-01-02T15:04:05"

// minYear rejects obviously bogus years typed into a display-format field.
const minYear = 1900

var (
	isoPrefixPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	displayPattern   = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// ValidationError reports a display-format date the user typed that cannot
// be converted to the wire form. The triggering mutation must be aborted
// before any network call.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// ToDisplay converts an ISO wire date to DD/MM/YYYY. An empty input yields
// an empty string.
//
// The strict YYYY-MM-DD prefix is tried first so that the calendar date the
// backend wrote is reproduced verbatim, with no time-zone skew from generic
// parsing. Generic parsing is the fallback; if that also fails the result
// is empty.
func ToDisplay(iso string) string {
	if iso == "" {
		return ""
	}
	if m := isoPrefixPattern.FindStringSubmatch(iso); m != nil {
		return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
	}
	t, err := time.Parse(ISOLayout, iso)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, iso); err != nil {
			return ""
		}
	}
	return t.Format("02/01/2006")
}

// ToISO parses a strict DD/MM/YYYY display date and emits the wire form
// YYYY-MM-DDT00:00:00.
//
// On rejection it returns the supplied previous ISO value unchanged together
// with a *ValidationError, so the caller can keep the field as it was and
// notify the user. Rejected inputs: pattern mismatch, month outside 1-12,
// day outside 1-31, year below 1900, and days that do not exist in the
// given month (31/02/2024 is an error, not a rollover).
func ToISO(display, previous string) (string, error) {
	m := displayPattern.FindStringSubmatch(display)
	if m == nil {
		return previous, &ValidationError{Input: display, Reason: "want DD/MM/YYYY"}
	}
	day := atoi2(m[1])
	month := atoi2(m[2])
	year := atoi2(m[3])
	if month < 1 || month > 12 {
		return previous, &ValidationError{Input: display, Reason: "month out of range"}
	}
	if day < 1 || day > 31 {
		return previous, &ValidationError{Input: display, Reason: "day out of range"}
	}
	if year < minYear {
		return previous, &ValidationError{Input: display, Reason: fmt.Sprintf("year before %d", minYear)}
	}
	// time.Date normalizes overflow (Feb 31 -> Mar 2); a changed component
	// means the day does not exist in that month.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return previous, &ValidationError{Input: display, Reason: "day does not exist in month"}
	}
	return fmt.Sprintf("%04d-%02d-%02dT00:00:00", year, month, day), nil
}

// DaysSince returns the elapsed whole days from an ISO date up to now,
// rounded up and unclamped. Unparseable or empty input yields zero.
func DaysSince(iso string, now time.Time) int {
	t, ok := parseISO(iso)
	if !ok {
		return 0
	}
	return ceilDays(now.Sub(t))
}

// DaysUntil returns the remaining whole days from now to an ISO date,
// rounded up and clamped at zero: a target already in the past counts as
// zero days remaining, never a negative number.
func DaysUntil(iso string, now time.Time) int {
	t, ok := parseISO(iso)
	if !ok {
		return 0
	}
	days := ceilDays(t.Sub(now))
	if days < 0 {
		return 0
	}
	return days
}

func parseISO(iso string) (time.Time, bool) {
	if m := isoPrefixPattern.FindStringSubmatch(iso); m != nil {
		return time.Date(atoi2(m[1]), time.Month(atoi2(m[2])), atoi2(m[3]), 0, 0, 0, 0, time.UTC), true
	}
	if t, err := time.Parse(ISOLayout, iso); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func ceilDays(d time.Duration) int {
	const day = 24 * time.Hour
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}

// atoi2 converts digit-only input already vetted by a pattern match.
func atoi2(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
