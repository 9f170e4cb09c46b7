package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/airtix/airtix/api"
	"github.com/airtix/airtix/config"
	"github.com/airtix/airtix/internal/service/booking"
	"github.com/airtix/airtix/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, tickets api.TicketReader) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, flightSvc, bookingSvc, tickets),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, tickets api.TicketReader) *gin.Engine {
	router := gin.Default()

	group := router.Group("/api")
	api.NewFlightHandler(flightSvc).Register(group.Group("/flights"))
	api.NewBookingHandler(bookingSvc).Register(group.Group("/bookings"))
	api.NewTicketHandler(tickets).Register(group.Group("/tickets"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/swagger/openapi.json", cfg.HTTP.SwaggerDir+"/openapi.json")
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
