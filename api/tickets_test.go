package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/airtix/airtix/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTicketReader struct {
	mock.Mock
}

func (m *MockTicketReader) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func TestTicketHandler_get(t *testing.T) {
	mockReader := &MockTicketReader{}
	handler := NewTicketHandler(mockReader)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "number", Value: "TKAAAAAAAAAA"}}
	c.Request = httptest.NewRequest("GET", "/api/tickets/TKAAAAAAAAAA", nil)

	ticket := &domain.Ticket{
		ID:           1,
		BookingID:    3,
		TicketNumber: "TKAAAAAAAAAA",
		Barcode:      "BAR0123456789AB",
		IssuedAt:     time.Now(),
	}

	mockReader.On("GetByNumber", c.Request.Context(), "TKAAAAAAAAAA").Return(ticket, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "TKAAAAAAAAAA", response["ticket_number"])
	assert.Equal(t, "BAR0123456789AB", response["barcode"])

	mockReader.AssertExpectations(t)
}

func TestTicketHandler_get_NotFound(t *testing.T) {
	mockReader := &MockTicketReader{}
	handler := NewTicketHandler(mockReader)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "number", Value: "TKMISSING000"}}
	c.Request = httptest.NewRequest("GET", "/api/tickets/TKMISSING000", nil)

	mockReader.On("GetByNumber", c.Request.Context(), "TKMISSING000").Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
