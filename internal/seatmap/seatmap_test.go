package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_EconomyOnlyLayout(t *testing.T) {
	rows := Build(0, 30, nil)

	assert.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Number)
		assert.Equal(t, ClassEconomy, row.Class)
		assert.Len(t, row.Seats, 6)
	}

	first := rows[0].Seats
	assert.Equal(t, "1A", first[0].Number)
	assert.Equal(t, PositionWindow, first[0].Position)
	assert.Equal(t, PositionMiddle, first[1].Position)
	assert.Equal(t, PositionAisle, first[2].Position)
	assert.Equal(t, PositionAisle, first[3].Position)
	assert.Equal(t, PositionMiddle, first[4].Position)
	assert.Equal(t, PositionWindow, first[5].Position)
	assert.Equal(t, "1F", first[5].Number)
}

func TestBuild_BusinessRowsComeFirst(t *testing.T) {
	rows := Build(8, 12, nil)

	assert.Len(t, rows, 4)
	assert.Equal(t, ClassBusiness, rows[0].Class)
	assert.Equal(t, ClassBusiness, rows[1].Class)
	assert.Equal(t, ClassEconomy, rows[2].Class)
	assert.Equal(t, ClassEconomy, rows[3].Class)

	// Economy numbering continues after the business block.
	assert.Equal(t, 3, rows[2].Number)
	assert.Equal(t, "3A", rows[2].Seats[0].Number)

	// Business is 2-2: A window, B aisle, C aisle, D window.
	biz := rows[0].Seats
	assert.Len(t, biz, 4)
	assert.Equal(t, PositionWindow, biz[0].Position)
	assert.Equal(t, PositionAisle, biz[1].Position)
	assert.Equal(t, PositionAisle, biz[2].Position)
	assert.Equal(t, PositionWindow, biz[3].Position)
}

func TestBuild_BookedPartition(t *testing.T) {
	booked := []string{"1A", "2C", "4F"}
	rows := Build(0, 24, booked)

	bookedCount := 0
	availableCount := 0
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, seat := range row.Seats {
			assert.False(t, seen[seat.Number], "seat %s appears twice", seat.Number)
			seen[seat.Number] = true
			switch seat.Status {
			case StatusBooked:
				bookedCount++
			case StatusAvailable:
				availableCount++
			}
		}
	}

	assert.Equal(t, len(booked), bookedCount)
	assert.Equal(t, 24-len(booked), availableCount)
	for _, s := range booked {
		assert.True(t, seen[s])
	}
}

func TestBuild_DeterministicRegardlessOfBookedOrder(t *testing.T) {
	a := Build(8, 18, []string{"1A", "3C", "2D"})
	b := Build(8, 18, []string{"2D", "1A", "3C"})

	assert.Equal(t, a, b)
}

func TestBuild_PartialRowsRoundUp(t *testing.T) {
	// 5 business seats still produce two full 2-2 rows.
	rows := Build(5, 0, nil)
	assert.Len(t, rows, 2)
	assert.Len(t, rows[0].Seats, 4)
	assert.Len(t, rows[1].Seats, 4)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(0, 0, nil))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 30, Count(0, 30))
	assert.Equal(t, 8+12, Count(8, 12))
	assert.Equal(t, 8, Count(5, 0))
	assert.Equal(t, 0, Count(0, 0))
}
