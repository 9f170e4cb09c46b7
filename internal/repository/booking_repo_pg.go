package repository

import (
	"context"
	"errors"

	"github.com/airtix/airtix/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// CreateConfirmed persists the booking, its passengers and one ticket
	// per passenger in a single transaction that also reserves the seats
	// on the flight. tickets[i] belongs to booking.Passengers[i].
	CreateConfirmed(ctx context.Context, booking *domain.Booking, tickets []domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// Cancel flips a confirmed booking to cancelled and releases the given
	// number of seats back to the flight, atomically.
	Cancel(ctx context.Context, bookingID, flightID int64, seats int) error
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking, tickets []domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := reserveSeats(ctx, tx, booking.FlightID, len(booking.Passengers)); err != nil {
		return err
	}

	// Re-validate the requested seat numbers against confirmed passengers;
	// the client-side seat map is only advisory.
	seats := make([]string, 0, len(booking.Passengers))
	for _, p := range booking.Passengers {
		if p.SeatNumber != "" {
			seats = append(seats, p.SeatNumber)
		}
	}
	if len(seats) > 0 {
		var taken int
		if err := tx.QueryRow(ctx, `SELECT count(*)
			FROM passengers p
			JOIN bookings b ON p.booking_id = b.id
			WHERE b.flight_id = $1 AND b.status = 'confirmed' AND p.seat_number = ANY($2)`,
			booking.FlightID, seats).Scan(&taken); err != nil {
			return err
		}
		if taken > 0 {
			return domain.ErrSeatTaken
		}
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (reference, flight_id, user_id, status, payment_status, total_amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.FlightID, booking.UserID, booking.Status, booking.PaymentStatus, booking.TotalAmountCents).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	for i := range booking.Passengers {
		p := &booking.Passengers[i]
		p.BookingID = booking.ID
		if err := tx.QueryRow(ctx, `INSERT INTO passengers (booking_id, first_name, last_name, date_of_birth, passport_number, nationality, seat_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			p.BookingID, p.FirstName, p.LastName, p.DateOfBirth, p.PassportNumber, p.Nationality, p.SeatNumber).
			Scan(&p.ID); err != nil {
			return err
		}
	}

	for i := range tickets {
		t := &tickets[i]
		t.BookingID = booking.ID
		t.PassengerID = booking.Passengers[i].ID
		if err := tx.QueryRow(ctx, `INSERT INTO tickets (booking_id, passenger_id, ticket_number, barcode, issued_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			t.BookingID, t.PassengerID, t.TicketNumber, t.Barcode, t.IssuedAt).
			Scan(&t.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// reserveSeats is the inventory ledger's reserve operation: the guard and
// the decrement are one statement, so concurrent bookings can never
// jointly oversell the flight.
func reserveSeats(ctx context.Context, tx pgx.Tx, flightID int64, seats int) error {
	var available int
	err := tx.QueryRow(ctx, `UPDATE flights
		SET available_seats = available_seats - $2, updated_at = now()
		WHERE id = $1 AND available_seats >= $2 AND status IN ('scheduled', 'boarding')
		RETURNING available_seats`, flightID, seats).Scan(&available)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	var status domain.FlightStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM flights WHERE id = $1`, flightID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status != domain.FlightStatusScheduled && status != domain.FlightStatusBoarding {
		return domain.ErrFlightClosed
	}
	return domain.ErrNoSeats
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, `WHERE reference = $1`, reference)
}

const bookingColumns = `id, reference, flight_id, user_id, status, payment_status, total_amount_cents, created_at, updated_at`

func (r *PGBookingRepository) getOne(ctx context.Context, where string, arg any) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings `+where, arg)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.FlightID, &b.UserID, &b.Status, &b.PaymentStatus, &b.TotalAmountCents, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	passengers, err := r.passengers(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Passengers = passengers
	return &b, nil
}

func (r *PGBookingRepository) passengers(ctx context.Context, bookingID int64) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, first_name, last_name, date_of_birth, passport_number, nationality, seat_number
		FROM passengers WHERE booking_id = $1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.PassportNumber, &p.Nationality, &p.SeatNumber); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.FlightID, &b.UserID, &b.Status, &b.PaymentStatus, &b.TotalAmountCents, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bookings {
		passengers, err := r.passengers(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		bookings[i].Passengers = passengers
	}
	return bookings, nil
}

func (r *PGBookingRepository) Cancel(ctx context.Context, bookingID, flightID int64, seats int) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The status guard makes concurrent double-cancellation release seats
	// at most once.
	cmd, err := tx.Exec(ctx, `UPDATE bookings
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status = 'confirmed'`, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyCancelled
	}

	if _, err := tx.Exec(ctx, `UPDATE flights
		SET available_seats = available_seats + $2, updated_at = now()
		WHERE id = $1`, flightID, seats); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET payment_status = $1, updated_at = now() WHERE id = $2`, status, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE reference = $1)`, reference).Scan(&exists)
	return exists, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
