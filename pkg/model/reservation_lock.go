package model

import "time"

// ReservationLock is an advisory lock document. Inserting it succeeds for at
// most one holder per ID thanks to the unique _id index; a TTL index on
// ExpiresAt reclaims locks from crashed holders.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
