package usecase

import (
	"bytes"
	"context"
	"fmt"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const passSize = 256

// ReceiptService renders a booking as a scannable parking pass and as a PDF receipt.
type ReceiptService interface {
	ParkingPass(ctx context.Context, bookingID string) ([]byte, error)
	Receipt(ctx context.Context, bookingID string) ([]byte, error)
}

type receiptService struct {
	bookings repository.BookingRepository
	appName  string
	log      *zap.Logger
}

func NewReceiptService(bookings repository.BookingRepository, appName string, log *zap.Logger) ReceiptService {
	return &receiptService{
		bookings: bookings,
		appName:  appName,
		log:      log.With(zap.String("service", "receipt")),
	}
}

// passPayload is the text encoded in the pass QR code.
func passPayload(b *entity.Booking) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s-%s|%s", b.ID, b.ParkingID, b.UserID, b.Date, b.StartTime, b.EndTime, b.Status)
}

func (s *receiptService) ParkingPass(ctx context.Context, bookingID string) ([]byte, error) {
	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(passPayload(booking), qrcode.Medium, passSize)
	if err != nil {
		s.log.Error("Failed to encode parking pass", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("encode parking pass: %w", err)
	}
	return png, nil
}

func (s *receiptService) Receipt(ctx context.Context, bookingID string) ([]byte, error) {
	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	qrPNG, err := qrcode.Encode(passPayload(booking), qrcode.Medium, passSize)
	if err != nil {
		return nil, fmt.Errorf("encode parking pass: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Booking %s", booking.ID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("%s parking receipt", s.appName))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	lines := []struct{ label, value string }{
		{"Booking ID", booking.ID},
		{"Parking", booking.ParkingName},
		{"Date", booking.Date},
		{"Time", fmt.Sprintf("%s - %s (%d h)", booking.StartTime, booking.EndTime, booking.Duration)},
		{"Rate", fmt.Sprintf("Rs. %d / hour", booking.Price)},
		{"Total", fmt.Sprintf("Rs. %d", booking.TotalAmount)},
		{"Status", string(booking.Status)},
		{"Booked at", booking.BookingTime.Format("2006-01-02 15:04 MST")},
	}
	for _, line := range lines {
		pdf.CellFormat(40, 8, line.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, line.value, "", 1, "L", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("pass", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("pass", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.log.Error("Failed to render receipt", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *receiptService) booking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: get booking: %w", ErrPersistence, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	return booking, nil
}
