package adaptor

import (
	"encoding/json"
	"net/http"

	"smartpark/internal/dto/request"
	"smartpark/internal/usecase"
	"smartpark/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler serves the inventory, booking overview and analytics routes.
type AdminHandler struct {
	bookings  usecase.BookingService
	inventory usecase.InventoryService
	analytics usecase.AnalyticsService
	log       *zap.Logger
}

func NewAdminHandler(
	bookings usecase.BookingService,
	inventory usecase.InventoryService,
	analytics usecase.AnalyticsService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		bookings:  bookings,
		inventory: inventory,
		analytics: analytics,
		log:       log.With(zap.String("handler", "admin")),
	}
}

// GetBookings handles GET /api/admin/bookings?page=&per_page=
func (h *AdminHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	req := request.PaginationFromQuery(r.URL.Query())

	bookings, err := h.bookings.GetAllBookings(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetParkingLots handles GET /api/admin/parkings
func (h *AdminHandler) GetParkingLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.inventory.ListParkingLots(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list parking lots")
		return
	}

	utils.ResponseSuccess(w, "success", lots)
}

// CreateParkingLot handles POST /api/admin/parkings
func (h *AdminHandler) CreateParkingLot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateParkingLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lot, err := h.inventory.CreateParkingLot(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create parking lot")
		return
	}

	utils.ResponseCreated(w, "Parking lot created", lot)
}

// UpdateParkingLot handles PUT /api/admin/parkings/{id}
func (h *AdminHandler) UpdateParkingLot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req request.UpdateParkingLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lot, err := h.inventory.UpdateParkingLot(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update parking lot")
		return
	}

	utils.ResponseSuccess(w, "Parking lot updated", lot)
}

// DeleteParkingLot handles DELETE /api/admin/parkings/{id}
func (h *AdminHandler) DeleteParkingLot(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.DeleteParkingLot(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete parking lot")
		return
	}

	utils.ResponseSuccess(w, "Parking lot deleted", nil)
}

// GetAnalytics handles GET /api/admin/analytics
func (h *AdminHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analytics.GetAnalytics(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get analytics")
		return
	}

	utils.ResponseSuccess(w, "success", analytics)
}

func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
