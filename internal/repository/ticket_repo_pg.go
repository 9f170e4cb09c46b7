package repository

import (
	"context"
	"errors"

	"github.com/airtix/airtix/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	TicketNumberExists(ctx context.Context, number string) (bool, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `id, booking_id, passenger_id, ticket_number, barcode, issued_at`

func (r *PGTicketRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE booking_id = $1 ORDER BY passenger_id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.PassengerID, &t.TicketNumber, &t.Barcode, &t.IssuedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_number = $1`, number)
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.BookingID, &t.PassengerID, &t.TicketNumber, &t.Barcode, &t.IssuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTicketRepository) TicketNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE ticket_number = $1)`, number).Scan(&exists)
	return exists, err
}

var _ TicketRepository = (*PGTicketRepository)(nil)
