package api

import (
	"context"
	"net/http"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/gin-gonic/gin"
)

type TicketReader interface {
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
}

type TicketHandler struct {
	tickets TicketReader
}

func NewTicketHandler(tickets TicketReader) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("/:number", h.get)
}

// Ticket lookup is the check-in path: gate agents scan a number, so the
// endpoint needs no caller identity.
func (h *TicketHandler) get(c *gin.Context) {
	ticket, err := h.tickets.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticket_number": ticket.TicketNumber,
		"barcode":       ticket.Barcode,
		"booking_id":    ticket.BookingID,
		"issued_at":     ticket.IssuedAt.Format(time.RFC3339),
	})
}
