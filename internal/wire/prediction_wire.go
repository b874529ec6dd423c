package wire

import (
	"smartpark/internal/adaptor"
	"smartpark/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePrediction(r chi.Router, predictionHandler *adaptor.PredictionHandler, limiter *middleware.RateLimiter, log *zap.Logger) {
	r.Route("/api/predictions", func(r chi.Router) {
		r.Use(limiter.Limit(log))

		r.Post("/", predictionHandler.Predict)
		r.Post("/forecast", predictionHandler.Forecast)
	})
}
