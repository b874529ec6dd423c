package adaptor

import (
	"net/http"

	"smartpark/internal/dto/request"
	"smartpark/internal/usecase"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

type ParkingHandler struct {
	service usecase.ParkingService
	log     *zap.Logger
}

func NewParkingHandler(service usecase.ParkingService, log *zap.Logger) *ParkingHandler {
	return &ParkingHandler{
		service: service,
		log:     log.With(zap.String("handler", "parking")),
	}
}

// Search handles GET /api/parkings/search
func (h *ParkingHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := request.SearchParkingRequest{
		PlaceID:         query.Get("place_id"),
		RadiusKm:        utils.ParseFloat(query.Get("radius"), 0),
		MinAvailability: utils.ParseFloat(query.Get("min_availability"), 0),
		MaxPrice:        utils.ParseFloat(query.Get("max_price"), 0),
		Type:            query.Get("type"),
		MinRating:       utils.ParseFloat(query.Get("min_rating"), 0),
		SortBy:          query.Get("sort_by"),
	}

	lat, hasLat, err := utils.ParseOptionalFloat(query.Get("lat"))
	if err != nil {
		utils.ResponseBadRequest(w, "lat must be a number", nil)
		return
	}
	lng, hasLng, err := utils.ParseOptionalFloat(query.Get("lng"))
	if err != nil {
		utils.ResponseBadRequest(w, "lng must be a number", nil)
		return
	}
	if hasLat {
		req.Lat = &lat
	}
	if hasLng {
		req.Lng = &lng
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Search(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "search parking")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Nearest handles GET /api/parkings/nearest
func (h *ParkingHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	center, ok := parseCenter(r)
	if !ok {
		utils.ResponseBadRequest(w, "lat and lng are required", nil)
		return
	}

	nearest, err := h.service.Nearest(r.Context(), center)
	if err != nil {
		h.handleServiceError(w, err, "find nearest parking")
		return
	}

	utils.ResponseSuccess(w, "success", nearest)
}

func parseCenter(r *http.Request) (geo.Coordinates, bool) {
	query := r.URL.Query()
	lat, hasLat, err := utils.ParseOptionalFloat(query.Get("lat"))
	if err != nil || !hasLat {
		return geo.Coordinates{}, false
	}
	lng, hasLng, err := utils.ParseOptionalFloat(query.Get("lng"))
	if err != nil || !hasLng {
		return geo.Coordinates{}, false
	}
	return geo.Coordinates{Lat: lat, Lng: lng}, true
}

func (h *ParkingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
