package provider

import (
	"context"
	"net/http"
	"strings"

	"smartpark/internal/data/entity"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// PredictionClient calls the occupancy forecasting service.
type PredictionClient struct {
	client  *http.Client
	baseURL string
	log     *zap.Logger
}

func NewPredictionClient(config utils.PredictionConfig, log *zap.Logger) *PredictionClient {
	return &PredictionClient{
		client:  newHTTPClient(config.Timeout),
		baseURL: strings.TrimRight(config.URL, "/"),
		log:     log.With(zap.String("provider", "prediction")),
	}
}

type predictResponse struct {
	Success            bool              `json:"success"`
	PredictedFreeSlots int               `json:"predictedFreeSlots"`
	PredictedOccupancy int               `json:"predictedOccupancy"`
	CrowdLevel         entity.CrowdLevel `json:"crowdLevel"`
	Color              string            `json:"color"`
	Suggestion         string            `json:"suggestion"`
	Error              string            `json:"error"`
}

type forecastRequest struct {
	Date       string `json:"date"`
	TotalSlots int    `json:"totalSlots"`
}

type forecastResponse struct {
	Success  bool                   `json:"success"`
	Forecast []entity.ForecastPoint `json:"forecast"`
	Error    string                 `json:"error"`
}

func (c *PredictionClient) Predict(ctx context.Context, input entity.PredictionInput) (*entity.Prediction, error) {
	var resp predictResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/predict", input, &resp); err != nil {
		return nil, err
	}

	return &entity.Prediction{
		Success:            resp.Success,
		PredictedOccupancy: resp.PredictedOccupancy,
		PredictedFreeSlots: resp.PredictedFreeSlots,
		CrowdLevel:         resp.CrowdLevel,
		Color:              resp.Color,
		Suggestion:         resp.Suggestion,
		Message:            resp.Error,
	}, nil
}

func (c *PredictionClient) Forecast(ctx context.Context, date string, totalSlots int) (*entity.Forecast, error) {
	var resp forecastResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/predict_future", forecastRequest{Date: date, TotalSlots: totalSlots}, &resp); err != nil {
		return nil, err
	}

	points := resp.Forecast
	if points == nil {
		points = []entity.ForecastPoint{}
	}
	return &entity.Forecast{Success: resp.Success, Points: points, Message: resp.Error}, nil
}
