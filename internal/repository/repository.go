package repository

import "time"

// Pagination caps. The store never honors a caller-supplied limit above
// these, protecting against unbounded scans. Measurement listing gets a
// higher cap because readings arrive in bulk.
const (
	DefaultListLimit     = 100
	MeasurementListLimit = 1000
)

// timeNow is the store clock, swapped out by tests. Append-only rows get
// their timestamps from here, never from caller input when omitted.
var timeNow = time.Now

// clampPage normalizes an offset/limit pair against cap.
func clampPage(offset, limit, cap int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > cap {
		limit = cap
	}
	return offset, limit
}
