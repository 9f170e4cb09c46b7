package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusBoarding  FlightStatus = "boarding"
	FlightStatusDeparted  FlightStatus = "departed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

type Flight struct {
	ID             int64
	FlightNumber   string
	Origin         string
	Destination    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	AircraftModel  string
	TotalSeats     int
	AvailableSeats int
	BusinessSeats  int
	EconomySeats   int
	PriceCents     int64
	Status         FlightStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FlightFilter narrows flight searches. Zero values mean "no filter".
type FlightFilter struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD, matched against departure day
	MinSeats    int
}
