package model

import (
	"time"

	"campsite/pkg/clock"
)

// Reservation is a stay at the campsite. Checkin and Checkout are midnight
// instants in the campsite zone; the stay occupies every calendar date d with
// Checkin <= d < Checkout (checkout day is not occupied).
type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Checkin   time.Time `json:"checkin" bson:"checkin" validate:"required"`
	Checkout  time.Time `json:"checkout" bson:"checkout" validate:"required,gtfield=Checkin"`
	Canceled  bool      `json:"canceled" bson:"canceled"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ActiveAt reports whether the reservation occupies the calendar date of d.
// Canceled reservations occupy nothing.
func (r *Reservation) ActiveAt(d time.Time) bool {
	if r.Canceled {
		return false
	}
	loc := r.Checkin.Location()
	day := clock.Midnight(d, loc)
	return !day.Before(clock.Midnight(r.Checkin, loc)) && day.Before(clock.Midnight(r.Checkout, loc))
}

// Nights is the length of stay in nights.
func (r *Reservation) Nights() int {
	return clock.DaysBetween(r.Checkin, r.Checkout)
}
