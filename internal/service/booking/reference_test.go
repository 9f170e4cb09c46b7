package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReferenceGenerator_BookingReference(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	gen := NewReferenceGenerator(mockBookingRepo, &MockTicketRepository{})

	ctx := context.Background()
	mockBookingRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	ref, err := gen.NewBookingReference(ctx)

	assert.NoError(t, err)
	assert.Len(t, ref, 10)
	assert.Equal(t, "BK", ref[:2])
	for _, c := range ref[2:] {
		assert.Contains(t, codeAlphabet, string(c))
	}
	mockBookingRepo.AssertExpectations(t)
}

func TestReferenceGenerator_RetriesOnCollision(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	gen := NewReferenceGenerator(mockBookingRepo, &MockTicketRepository{})

	ctx := context.Background()
	mockBookingRepo.On("ReferenceExists", ctx, mock.Anything).Return(true, nil).Times(3)
	mockBookingRepo.On("ReferenceExists", ctx, mock.Anything).Return(false, nil).Once()

	ref, err := gen.NewBookingReference(ctx)

	assert.NoError(t, err)
	assert.NotEmpty(t, ref)
	mockBookingRepo.AssertExpectations(t)
}

func TestReferenceGenerator_GivesUpAfterCap(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	gen := NewReferenceGenerator(mockBookingRepo, &MockTicketRepository{})

	ctx := context.Background()
	mockBookingRepo.On("ReferenceExists", ctx, mock.Anything).Return(true, nil).Times(maxGenerateAttempts)

	ref, err := gen.NewBookingReference(ctx)

	assert.ErrorIs(t, err, domain.ErrUniquenessExhausted)
	assert.Empty(t, ref)
	mockBookingRepo.AssertExpectations(t)
}

func TestReferenceGenerator_StoreError(t *testing.T) {
	mockBookingRepo := &MockBookingRepository{}
	gen := NewReferenceGenerator(mockBookingRepo, &MockTicketRepository{})

	ctx := context.Background()
	storeErr := errors.New("database error")
	mockBookingRepo.On("ReferenceExists", ctx, mock.Anything).Return(false, storeErr).Once()

	ref, err := gen.NewBookingReference(ctx)

	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, ref)
}

func TestReferenceGenerator_TicketNumber(t *testing.T) {
	mockTicketRepo := &MockTicketRepository{}
	gen := NewReferenceGenerator(&MockBookingRepository{}, mockTicketRepo)

	ctx := context.Background()
	mockTicketRepo.On("TicketNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	number, err := gen.NewTicketNumber(ctx)

	assert.NoError(t, err)
	assert.Len(t, number, 12)
	assert.Equal(t, "TK", number[:2])
	mockTicketRepo.AssertExpectations(t)
}

func TestTicketIssuer_IssuesOnePerPassenger(t *testing.T) {
	mockTicketRepo := &MockTicketRepository{}
	gen := NewReferenceGenerator(&MockBookingRepository{}, mockTicketRepo)
	issuer := NewTicketIssuer(gen)

	ctx := context.Background()
	mockTicketRepo.On("TicketNumberExists", ctx, mock.Anything).Return(false, nil).Times(3)

	tickets, err := issuer.Issue(ctx, 3)

	assert.NoError(t, err)
	assert.Len(t, tickets, 3)

	seen := map[string]bool{}
	for _, ticket := range tickets {
		assert.Equal(t, "TK", ticket.TicketNumber[:2])
		assert.Equal(t, "BAR", ticket.Barcode[:3])
		assert.Len(t, ticket.Barcode, 15)
		assert.False(t, ticket.IssuedAt.IsZero())
		assert.False(t, seen[ticket.TicketNumber])
		seen[ticket.TicketNumber] = true
	}
}

func TestTicketIssuer_ZeroPassengers(t *testing.T) {
	gen := NewReferenceGenerator(&MockBookingRepository{}, &MockTicketRepository{})
	issuer := NewTicketIssuer(gen)

	tickets, err := issuer.Issue(context.Background(), 0)

	assert.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestBarcodeShape(t *testing.T) {
	issuedAt := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	code := barcode("TKAAAAAAAAAA", issuedAt)
	assert.Len(t, code, 15)
	assert.Equal(t, "BAR", code[:3])
	for _, c := range code[3:] {
		assert.Contains(t, "0123456789ABCDEF", string(c))
	}

	// Same inputs give the same barcode.
	assert.Equal(t, code, barcode("TKAAAAAAAAAA", issuedAt))
	assert.NotEqual(t, code, barcode("TKBBBBBBBBBB", issuedAt))
}
