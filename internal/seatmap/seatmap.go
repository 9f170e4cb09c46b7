// Package seatmap derives the per-flight seat layout from the aircraft
// seating configuration and the set of seat numbers already taken by
// passengers of confirmed bookings. It does no I/O.
package seatmap

import "strconv"

type Class string

const (
	ClassBusiness Class = "business"
	ClassEconomy  Class = "economy"
)

type Position string

const (
	PositionWindow Position = "window"
	PositionMiddle Position = "middle"
	PositionAisle  Position = "aisle"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

type Seat struct {
	Number   string   `json:"number"`
	Position Position `json:"position"`
	Status   Status   `json:"status"`
}

type Row struct {
	Number int    `json:"row_number"`
	Class  Class  `json:"class"`
	Seats  []Seat `json:"seats"`
}

// Business rows use a 2-2 configuration, economy rows 3-3.
var (
	businessLetters   = []string{"A", "B", "C", "D"}
	businessPositions = []Position{PositionWindow, PositionAisle, PositionAisle, PositionWindow}
	economyLetters    = []string{"A", "B", "C", "D", "E", "F"}
	economyPositions  = []Position{PositionWindow, PositionMiddle, PositionAisle, PositionAisle, PositionMiddle, PositionWindow}
)

// Build returns the ordered seat layout. Business rows come first, row
// numbering is continuous across the two blocks. The result depends only
// on the inputs; the order of the booked slice does not matter.
func Build(businessSeats, economySeats int, booked []string) []Row {
	bookedSet := make(map[string]struct{}, len(booked))
	for _, s := range booked {
		bookedSet[s] = struct{}{}
	}

	var rows []Row
	rowNumber := 1
	rowNumber = appendRows(&rows, rowNumber, ClassBusiness, businessSeats, businessLetters, businessPositions, bookedSet)
	appendRows(&rows, rowNumber, ClassEconomy, economySeats, economyLetters, economyPositions, bookedSet)
	return rows
}

func appendRows(rows *[]Row, rowNumber int, class Class, seatCount int, letters []string, positions []Position, booked map[string]struct{}) int {
	if seatCount <= 0 {
		return rowNumber
	}
	perRow := len(letters)
	rowCount := (seatCount + perRow - 1) / perRow

	for r := 0; r < rowCount; r++ {
		row := Row{
			Number: rowNumber,
			Class:  class,
			Seats:  make([]Seat, 0, perRow),
		}
		for i, letter := range letters {
			number := seatNumber(rowNumber, letter)
			status := StatusAvailable
			if _, ok := booked[number]; ok {
				status = StatusBooked
			}
			row.Seats = append(row.Seats, Seat{
				Number:   number,
				Position: positions[i],
				Status:   status,
			})
		}
		*rows = append(*rows, row)
		rowNumber++
	}
	return rowNumber
}

func seatNumber(row int, letter string) string {
	return strconv.Itoa(row) + letter
}

// Count returns the number of seats the layout exposes for the given
// configuration (full rows, matching Build).
func Count(businessSeats, economySeats int) int {
	total := 0
	if businessSeats > 0 {
		total += (businessSeats + 3) / 4 * 4
	}
	if economySeats > 0 {
		total += (economySeats + 5) / 6 * 6
	}
	return total
}
