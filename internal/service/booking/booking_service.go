package booking

import (
	"context"
	"log"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/airtix/airtix/internal/kafka"
	"github.com/airtix/airtix/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, bookingID, userID int64, status domain.PaymentStatus) (*domain.Booking, error)
	TicketsForBooking(ctx context.Context, bookingID, userID int64) ([]domain.Ticket, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService orchestrates validation, seat reservation, persistence
// and ticket issuance. The multi-entity write itself happens in one
// repository transaction; this service only decides whether it may run
// and what to tell the world afterwards.
type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	tickets            repository.TicketRepository
	validator          *Validator
	refs               *ReferenceGenerator
	issuer             *TicketIssuer
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	tickets repository.TicketRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	refs := NewReferenceGenerator(bookings, tickets)
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		tickets:      tickets,
		validator:    NewValidator(),
		refs:         refs,
		issuer:       NewTicketIssuer(refs),
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validator.ValidateBooking(input); err != nil {
		return nil, err
	}

	reference, err := s.refs.NewBookingReference(ctx)
	if err != nil {
		return nil, err
	}

	passengers := make([]domain.Passenger, 0, len(input.Passengers))
	for _, p := range input.Passengers {
		passenger := domain.Passenger{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
			SeatNumber:     p.SeatNumber,
		}
		if p.DateOfBirth != "" {
			dob, err := time.Parse(dateLayout, p.DateOfBirth)
			if err != nil {
				return nil, &domain.ValidationError{Messages: []string{"invalid date of birth"}}
			}
			passenger.DateOfBirth = &dob
		}
		passengers = append(passengers, passenger)
	}

	tickets, err := s.issuer.Issue(ctx, len(passengers))
	if err != nil {
		return nil, err
	}

	paymentStatus := domain.PaymentStatus(input.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}

	booking := &domain.Booking{
		Reference:        reference,
		FlightID:         input.FlightID,
		UserID:           input.UserID,
		PaymentStatus:    paymentStatus,
		TotalAmountCents: input.TotalAmountCents,
		Passengers:       passengers,
	}

	if err := s.bookings.CreateConfirmed(ctx, booking, tickets); err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_confirmed", booking)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return booking, nil
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return s.bookings.GetByReference(ctx, reference)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.Status == domain.FlightStatusDeparted || flight.DepartureTime.Before(s.now()) {
		return nil, domain.ErrFlightDeparted
	}

	if err := s.bookings.Cancel(ctx, booking.ID, booking.FlightID, len(booking.Passengers)); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled
	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_cancelled", booking)
	return booking, nil
}

func (s *BookingService) UpdatePaymentStatus(ctx context.Context, bookingID, userID int64, status domain.PaymentStatus) (*domain.Booking, error) {
	switch status {
	case domain.PaymentStatusPending, domain.PaymentStatusCompleted, domain.PaymentStatusFailed, domain.PaymentStatusRefunded:
	default:
		return nil, &domain.ValidationError{Messages: []string{"invalid payment status"}}
	}

	booking, err := s.GetBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, booking.ID, status); err != nil {
		return nil, err
	}

	booking.PaymentStatus = status
	s.publish(ctx, "payment_updated", booking)
	return booking, nil
}

func (s *BookingService) TicketsForBooking(ctx context.Context, bookingID, userID int64) ([]domain.Ticket, error) {
	if _, err := s.GetBooking(ctx, bookingID, userID); err != nil {
		return nil, err
	}
	return s.tickets.ListByBooking(ctx, bookingID)
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flight cache: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	seats := make([]string, 0, len(booking.Passengers))
	for _, p := range booking.Passengers {
		if p.SeatNumber != "" {
			seats = append(seats, p.SeatNumber)
		}
	}

	event := kafka.BookingEvent{
		ID:               uuid.NewString(),
		Type:             eventType,
		Reference:        booking.Reference,
		BookingID:        booking.ID,
		FlightID:         booking.FlightID,
		UserID:           booking.UserID,
		Seats:            seats,
		Status:           string(booking.Status),
		PaymentStatus:    string(booking.PaymentStatus),
		TotalAmountCents: booking.TotalAmountCents,
		OccurredAt:       s.now(),
	}

	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		log.Printf("publish %s event for booking %s: %v", eventType, booking.Reference, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			log.Printf("publish %s notification for booking %s: %v", eventType, booking.Reference, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
