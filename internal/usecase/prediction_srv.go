package usecase

import (
	"context"
	"fmt"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/internal/dto/request"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

const predictionUnavailable = "prediction unavailable, try again"

// Predictor is the forecasting service client.
type Predictor interface {
	Predict(ctx context.Context, input entity.PredictionInput) (*entity.Prediction, error)
	Forecast(ctx context.Context, date string, totalSlots int) (*entity.Forecast, error)
}

// PredictionService wraps the predictor. Upstream failures come back as an
// unsuccessful result, never as an error.
type PredictionService interface {
	Predict(ctx context.Context, req *request.PredictionRequest) (*entity.Prediction, error)
	Forecast(ctx context.Context, req *request.ForecastRequest) (*entity.Forecast, error)
}

type predictionService struct {
	predictor Predictor
	log       *zap.Logger
}

func NewPredictionService(predictor Predictor, log *zap.Logger) PredictionService {
	return &predictionService{
		predictor: predictor,
		log:       log.With(zap.String("service", "prediction")),
	}
}

func (s *predictionService) Predict(ctx context.Context, req *request.PredictionRequest) (*entity.Prediction, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrValidation, err)
	}
	clock, err := time.Parse("15:04", req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: time: %v", ErrValidation, err)
	}

	if s.predictor == nil {
		return &entity.Prediction{Message: predictionUnavailable}, nil
	}

	input := entity.PredictionInput{
		ParkingID:  req.ParkingID,
		TotalSlots: req.TotalSlots,
		DayOfWeek:  int(date.Weekday()),
		Hour:       clock.Hour(),
	}

	prediction, err := s.predictor.Predict(ctx, input)
	if err != nil || prediction == nil || !prediction.Success {
		s.log.Warn("Prediction failed",
			zap.Error(err),
			zap.String("parking_id", req.ParkingID),
			zap.Int("day_of_week", input.DayOfWeek),
			zap.Int("hour", input.Hour),
		)
		return &entity.Prediction{Message: predictionUnavailable}, nil
	}

	if prediction.CrowdLevel == "" {
		prediction.CrowdLevel, prediction.Color, prediction.Suggestion = entity.ClassifyCrowd(float64(prediction.PredictedOccupancy))
	}
	return prediction, nil
}

func (s *predictionService) Forecast(ctx context.Context, req *request.ForecastRequest) (*entity.Forecast, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if s.predictor == nil {
		return &entity.Forecast{Points: []entity.ForecastPoint{}, Message: predictionUnavailable}, nil
	}

	forecast, err := s.predictor.Forecast(ctx, req.Date, req.TotalSlots)
	if err != nil || forecast == nil || !forecast.Success {
		s.log.Warn("Forecast failed", zap.Error(err), zap.String("date", req.Date))
		return &entity.Forecast{Points: []entity.ForecastPoint{}, Message: predictionUnavailable}, nil
	}
	return forecast, nil
}
