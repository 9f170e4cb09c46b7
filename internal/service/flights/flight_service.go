package flights

import (
	"context"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/airtix/airtix/internal/repository"
	"github.com/airtix/airtix/internal/seatmap"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	SeatMap(ctx context.Context, flightID int64) ([]seatmap.Row, error)
	MarkDepartedFlights(ctx context.Context) ([]int64, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	now   func() time.Time
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache, now: time.Now}
}

// List returns the open flights with no filter applied. Only this
// unfiltered listing is cached; filtered searches always hit the store.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, domain.FlightFilter{})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if filter == (domain.FlightFilter{}) {
		return s.List(ctx)
	}
	return s.repo.Search(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// SeatMap lays out the flight's cabin and marks every seat held by a
// confirmed booking as booked.
func (s *FlightService) SeatMap(ctx context.Context, flightID int64) ([]seatmap.Row, error) {
	flight, err := s.repo.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedSeats(ctx, flightID)
	if err != nil {
		return nil, err
	}

	return seatmap.Build(flight.BusinessSeats, flight.EconomySeats, booked), nil
}

// MarkDepartedFlights flips flights whose departure time has passed to
// the departed status. The worker calls this on a ticker.
func (s *FlightService) MarkDepartedFlights(ctx context.Context) ([]int64, error) {
	return s.repo.MarkDepartedBefore(ctx, s.now())
}

var _ FlightUseCase = (*FlightService)(nil)
