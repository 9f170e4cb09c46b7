package booking

import (
	"context"
	"crypto/rand"

	"github.com/airtix/airtix/internal/domain"
)

// Alphabet without 0/O/1/I so references survive being read over the phone.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const maxGenerateAttempts = 10

type ReferenceIndex interface {
	ReferenceExists(ctx context.Context, reference string) (bool, error)
}

type TicketNumberIndex interface {
	TicketNumberExists(ctx context.Context, number string) (bool, error)
}

// ReferenceGenerator produces booking references (BK + 8 chars) and
// ticket numbers (TK + 10 chars). Candidates are checked against the
// store; after maxGenerateAttempts collisions it gives up with
// ErrUniquenessExhausted instead of looping forever.
type ReferenceGenerator struct {
	bookings ReferenceIndex
	tickets  TicketNumberIndex
}

func NewReferenceGenerator(bookings ReferenceIndex, tickets TicketNumberIndex) *ReferenceGenerator {
	return &ReferenceGenerator{bookings: bookings, tickets: tickets}
}

func (g *ReferenceGenerator) NewBookingReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		candidate, err := randomCode("BK", 8)
		if err != nil {
			return "", err
		}
		exists, err := g.bookings.ReferenceExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrUniquenessExhausted
}

func (g *ReferenceGenerator) NewTicketNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		candidate, err := randomCode("TK", 10)
		if err != nil {
			return "", err
		}
		exists, err := g.tickets.TicketNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrUniquenessExhausted
}

func randomCode(prefix string, length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return prefix + string(out), nil
}
