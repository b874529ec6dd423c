package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"smartpark/internal/dto/request"
	"smartpark/internal/usecase"
	"smartpark/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service  usecase.BookingService
	receipts usecase.ReceiptService
	log      *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, receipts usecase.ReceiptService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		receipts: receipts,
		log:      log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetUserBookings handles GET /api/users/{userId}/bookings
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CheckOut handles PUT /api/bookings/{id}/checkout
func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CheckOut(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "check out booking")
		return
	}

	utils.ResponseSuccess(w, "Checked out", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// ParkingPass handles GET /api/bookings/{id}/pass.png
func (h *BookingHandler) ParkingPass(w http.ResponseWriter, r *http.Request) {
	png, err := h.receipts.ParkingPass(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "render parking pass")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Receipt handles GET /api/bookings/{id}/receipt.pdf
func (h *BookingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	pdf, err := h.receipts.Receipt(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, bookingID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
