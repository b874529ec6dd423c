// internal/wire/wire.go
package wire

import (
	"net/http"

	"smartpark/internal/adaptor"
	"smartpark/internal/data/repository"
	"smartpark/internal/notify"
	"smartpark/internal/usecase"
	"smartpark/pkg/middleware"
	"smartpark/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	deps usecase.Dependencies,
	hub *notify.Hub,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, hub, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	limiter := middleware.NewRateLimiter(config.RateLimit)

	wireLocation(r, handler.Location, limiter, logger)
	wireParking(r, handler.Parking, limiter, logger)
	wirePrediction(r, handler.Prediction, limiter, logger)
	wireBooking(r, handler.Booking)
	wireAdmin(r, handler.Admin, config.Admin, logger)
	wireRealtime(r, handler.Realtime)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
