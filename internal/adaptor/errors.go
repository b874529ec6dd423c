package adaptor

import (
	"errors"
	"net/http"

	"smartpark/internal/usecase"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps usecase sentinels onto the response envelope.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	fields := []zap.Field{zap.Error(err), zap.String("operation", operation)}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", fields...)
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidState), errors.Is(err, usecase.ErrNoAvailability):
		log.Warn(operation+" failed - conflict", fields...)
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		log.Warn(operation+" failed - upstream unavailable", fields...)
		utils.ResponseBadGateway(w, "Upstream service unavailable")

	case errors.Is(err, usecase.ErrDataIntegrity):
		log.Error(operation+" failed - data integrity", fields...)
		utils.ResponseInternalError(w, "Inventory data is inconsistent")

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
