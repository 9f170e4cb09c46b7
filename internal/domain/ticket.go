package domain

import "time"

// Ticket is immutable once issued. Exactly one exists per passenger of a
// confirmed booking; none exist for any other booking state.
type Ticket struct {
	ID           int64
	BookingID    int64
	PassengerID  int64
	TicketNumber string
	Barcode      string
	IssuedAt     time.Time
}
