package adaptor

import (
	"smartpark/internal/notify"
	"smartpark/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking    *BookingHandler
	Parking    *ParkingHandler
	Location   *LocationHandler
	Prediction *PredictionHandler
	Admin      *AdminHandler
	Realtime   *RealtimeHandler
}

func NewHandler(service *usecase.Service, hub *notify.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Booking:    NewBookingHandler(service.Booking, service.Receipt, log),
		Parking:    NewParkingHandler(service.Parking, log),
		Location:   NewLocationHandler(service.Parking, log),
		Prediction: NewPredictionHandler(service.Prediction, log),
		Admin:      NewAdminHandler(service.Booking, service.Inventory, service.Analytics, log),
		Realtime:   NewRealtimeHandler(hub, log),
	}
}
