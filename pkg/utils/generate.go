package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingID returns BK<unix-millis>-<8 hex>.
func GenerateBookingID(now time.Time) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("BK%d-%s", now.UnixMilli(), suffix)
}
