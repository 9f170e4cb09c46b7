package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/airtix/airtix/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify user %d: booking %s is %s (flight %d, seats %s)\n",
		event.UserID, event.Reference, event.Type, event.FlightID, strings.Join(event.Seats, ", "))
	return nil
}
