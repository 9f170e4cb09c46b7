package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Booking struct {
	ID               int64
	Reference        string
	FlightID         int64
	UserID           int64
	Status           BookingStatus
	PaymentStatus    PaymentStatus
	TotalAmountCents int64
	Passengers       []Passenger
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Passenger struct {
	ID             int64
	BookingID      int64
	FirstName      string
	LastName       string
	DateOfBirth    *time.Time
	PassportNumber string
	Nationality    string
	SeatNumber     string
}
