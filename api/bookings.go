package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/airtix/airtix/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type passengerResponse struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	PassportNumber string `json:"passport_number,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	SeatNumber     string `json:"seat_number,omitempty"`
}

type bookingResponse struct {
	ID               int64               `json:"id"`
	Reference        string              `json:"reference"`
	FlightID         int64               `json:"flight_id"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	TotalAmountCents int64               `json:"total_amount_cents"`
	Passengers       []passengerResponse `json:"passengers"`
	CreatedAt        string              `json:"created_at,omitempty"`
}

type updatePaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type ticketResponse struct {
	TicketNumber string `json:"ticket_number"`
	Barcode      string `json:"barcode"`
	IssuedAt     string `json:"issued_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
	router.PATCH("/:id/payment", h.updatePayment)
	router.GET("/:id/tickets", h.tickets)
}

func (h *BookingHandler) create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = userID

	created, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if reference := c.Query("reference"); reference != "" {
		found, err := h.service.GetByReference(c.Request.Context(), reference)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, []bookingResponse{toBookingResponse(found)})
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func (h *BookingHandler) updatePayment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, userID, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) tickets(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	tickets, err := h.service.TicketsForBooking(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, ticketResponse{
			TicketNumber: ticket.TicketNumber,
			Barcode:      ticket.Barcode,
			IssuedAt:     ticket.IssuedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	passengers := make([]passengerResponse, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		pr := passengerResponse{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
			SeatNumber:     p.SeatNumber,
		}
		if p.DateOfBirth != nil {
			pr.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
		}
		passengers = append(passengers, pr)
	}

	resp := bookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		FlightID:         b.FlightID,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		TotalAmountCents: b.TotalAmountCents,
		Passengers:       passengers,
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
