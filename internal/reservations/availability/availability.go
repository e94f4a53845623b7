// Package availability computes per-date occupancy for a query window.
// The scan is O(days x reservations); stays are short and the booking
// horizon is bounded, so both operands stay small.
package availability

import (
	"time"

	"campsite/pkg/clock"
	"campsite/pkg/model"
)

// Dates returns, in order and without duplicates, every calendar date in the
// inclusive [firstDay, lastDay] window whose occupancy is below capacity.
// A reservation with ID equal to excludeID does not count against its own
// occupancy; callers pass it when re-checking a reservation being moved.
func Dates(firstDay, lastDay time.Time, capacity int, reservations []*model.Reservation, excludeID string) []time.Time {
	loc := firstDay.Location()
	first := clock.Midnight(firstDay, loc)
	last := clock.Midnight(lastDay, loc)

	available := make([]time.Time, 0, clock.DaysBetween(first, last)+1)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		occupancy := 0
		for _, reservation := range reservations {
			if excludeID != "" && reservation.ID == excludeID {
				continue
			}
			if reservation.ActiveAt(day) {
				occupancy++
			}
		}
		if occupancy < capacity {
			available = append(available, day)
		}
	}

	return available
}
