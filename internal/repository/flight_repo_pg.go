package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	BookedSeats(ctx context.Context, flightID int64) ([]string, error)
	MarkDepartedBefore(ctx context.Context, deadline time.Time) ([]int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.id, f.flight_number, f.origin, f.destination, f.departure_time, f.arrival_time,
	a.model, f.total_seats, f.available_seats, a.business_seats, a.economy_seats,
	f.price_cents, f.status, f.created_at, f.updated_at`

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	sql := `SELECT ` + flightColumns + `
		FROM flights f
		JOIN aircraft a ON f.aircraft_id = a.id
		WHERE f.status IN ('scheduled', 'boarding')`
	args := []any{}

	if filter.Origin != "" {
		args = append(args, filter.Origin)
		sql += ` AND f.origin = $` + strconv.Itoa(len(args))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		sql += ` AND f.destination = $` + strconv.Itoa(len(args))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		sql += ` AND f.departure_time::date = $` + strconv.Itoa(len(args)) + `::date`
	}
	if filter.MinSeats > 0 {
		args = append(args, filter.MinSeats)
		sql += ` AND f.available_seats >= $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY f.departure_time`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+`
		FROM flights f
		JOIN aircraft a ON f.aircraft_id = a.id
		WHERE f.id = $1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// BookedSeats returns the seat numbers held by passengers of confirmed
// bookings on the flight; this set drives the seat map and the
// transaction-time seat re-check.
func (r *PGFlightRepository) BookedSeats(ctx context.Context, flightID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT p.seat_number
		FROM passengers p
		JOIN bookings b ON p.booking_id = b.id
		WHERE b.flight_id = $1 AND b.status = 'confirmed' AND p.seat_number <> ''`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGFlightRepository) MarkDepartedBefore(ctx context.Context, deadline time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `UPDATE flights
		SET status = 'departed', updated_at = now()
		WHERE departure_time <= $1 AND status IN ('scheduled', 'boarding')
		RETURNING id`, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime,
		&f.AircraftModel, &f.TotalSeats, &f.AvailableSeats, &f.BusinessSeats, &f.EconomySeats,
		&f.PriceCents, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
