package adaptor

import (
	"encoding/json"
	"net/http"

	"smartpark/internal/dto/request"
	"smartpark/internal/usecase"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

type PredictionHandler struct {
	service usecase.PredictionService
	log     *zap.Logger
}

func NewPredictionHandler(service usecase.PredictionService, log *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		log:     log.With(zap.String("handler", "prediction")),
	}
}

// Predict handles POST /api/predictions. An unreachable predictor still answers 200
// with success=false.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req request.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	prediction, err := h.service.Predict(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "predict occupancy")
		return
	}

	utils.ResponseSuccess(w, "success", prediction)
}

// Forecast handles POST /api/predictions/forecast
func (h *PredictionHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req request.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	forecast, err := h.service.Forecast(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "forecast occupancy")
		return
	}

	utils.ResponseSuccess(w, "success", forecast)
}
