package adaptor

import (
	"net/http"

	"smartpark/internal/usecase"
	"smartpark/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LocationHandler struct {
	service usecase.ParkingService
	log     *zap.Logger
}

func NewLocationHandler(service usecase.ParkingService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		log:     log.With(zap.String("handler", "location")),
	}
}

// Suggest handles GET /api/locations/suggest?q=&country=
func (h *LocationHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	suggestions, err := h.service.SuggestLocations(r.Context(), query.Get("q"), query.Get("country"))
	if err != nil {
		writeServiceError(w, h.log, err, "suggest locations")
		return
	}

	utils.ResponseSuccess(w, "success", suggestions)
}

// Resolve handles GET /api/locations/{placeId}
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	coords, err := h.service.ResolveLocation(r.Context(), chi.URLParam(r, "placeId"))
	if err != nil {
		writeServiceError(w, h.log, err, "resolve location")
		return
	}

	utils.ResponseSuccess(w, "success", coords)
}
