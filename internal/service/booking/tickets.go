package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/airtix/airtix/internal/domain"
)

// TicketIssuer prepares one ticket per passenger. The rows are written by
// the booking transaction, so a failure here aborts the whole booking.
type TicketIssuer struct {
	refs *ReferenceGenerator
	now  func() time.Time
}

func NewTicketIssuer(refs *ReferenceGenerator) *TicketIssuer {
	return &TicketIssuer{refs: refs, now: time.Now}
}

func (i *TicketIssuer) Issue(ctx context.Context, passengerCount int) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0, passengerCount)
	seen := make(map[string]struct{}, passengerCount)

	for n := 0; n < passengerCount; n++ {
		var number string
		for attempt := 0; ; attempt++ {
			candidate, err := i.refs.NewTicketNumber(ctx)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[candidate]; !dup {
				number = candidate
				break
			}
			if attempt+1 >= maxGenerateAttempts {
				return nil, domain.ErrUniquenessExhausted
			}
		}
		seen[number] = struct{}{}

		issuedAt := i.now()
		tickets = append(tickets, domain.Ticket{
			TicketNumber: number,
			Barcode:      barcode(number, issuedAt),
			IssuedAt:     issuedAt,
		})
	}
	return tickets, nil
}

func barcode(ticketNumber string, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(ticketNumber + strconv.FormatInt(issuedAt.UnixNano(), 10)))
	return "BAR" + strings.ToUpper(hex.EncodeToString(sum[:6]))
}
