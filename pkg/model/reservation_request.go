package model

// ReservationRequest is the inbound payload for creating or updating a
// reservation. ArrivalDate is a calendar date in the campsite time zone.
type ReservationRequest struct {
	Email        string `json:"email" validate:"required,email"`
	ArrivalDate  string `json:"arrivalDate" validate:"required,datetime=2006-01-02"`
	LengthOfStay int    `json:"lengthOfStay" validate:"required,min=1"`
}

// ReservationUpdateRequest moves an existing stay. The email stays as booked.
type ReservationUpdateRequest struct {
	ArrivalDate  string `json:"arrivalDate" validate:"required,datetime=2006-01-02"`
	LengthOfStay int    `json:"lengthOfStay" validate:"required,min=1"`
}
