package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type CreateBookingInput struct {
	FlightID         int64            `json:"flight_id"`
	UserID           int64            `json:"-"`
	TotalAmountCents int64            `json:"total_amount_cents"`
	PaymentStatus    string           `json:"payment_status"`
	Passengers       []PassengerInput `json:"passengers"`
}

type PassengerInput struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportNumber string `json:"passport_number"`
	Nationality    string `json:"nationality"`
	SeatNumber     string `json:"seat_number"`
}

// Validator checks booking input before anything touches the store. It
// returns every problem at once so the caller can fix the form in one go.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(), now: time.Now}
}

func (v *Validator) ValidateBooking(input CreateBookingInput) error {
	var msgs []string

	if input.FlightID == 0 {
		msgs = append(msgs, "flight id is required")
	}
	if input.UserID == 0 {
		msgs = append(msgs, "user id is required")
	}
	if input.TotalAmountCents <= 0 {
		msgs = append(msgs, "valid total amount is required")
	}
	if input.PaymentStatus != "" {
		if err := v.validate.Var(input.PaymentStatus, "oneof=pending completed failed refunded"); err != nil {
			msgs = append(msgs, "invalid payment status")
		}
	}

	if len(input.Passengers) == 0 {
		msgs = append(msgs, "at least one passenger is required")
	}
	for i, p := range input.Passengers {
		n := i + 1
		if err := v.validate.Struct(p); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				for _, fe := range fieldErrs {
					switch fe.Field() {
					case "FirstName":
						msgs = append(msgs, fmt.Sprintf("first name is required for passenger %d", n))
					case "LastName":
						msgs = append(msgs, fmt.Sprintf("last name is required for passenger %d", n))
					}
				}
			}
		}
		if p.DateOfBirth != "" {
			dob, err := time.Parse(dateLayout, p.DateOfBirth)
			if err != nil || dob.After(v.now()) {
				msgs = append(msgs, fmt.Sprintf("invalid date of birth for passenger %d", n))
			}
		}
	}

	if len(msgs) > 0 {
		return &domain.ValidationError{Messages: msgs}
	}
	return nil
}
