package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/internal/dto/response"

	"go.uber.org/zap"
)

// timelineDays is how many of the most recent booking dates the timeline keeps.
const timelineDays = 7

type AnalyticsService interface {
	GetAnalytics(ctx context.Context) (*response.AnalyticsResponse, error)
}

type analyticsService struct {
	bookings  repository.BookingRepository
	inventory InventoryService
	log       *zap.Logger
}

func NewAnalyticsService(bookings repository.BookingRepository, inventory InventoryService, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		bookings:  bookings,
		inventory: inventory,
		log:       log.With(zap.String("service", "analytics")),
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context) (*response.AnalyticsResponse, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("%w: load bookings: %w", ErrPersistence, err)
	}

	lots, err := s.inventory.ListParkingLots(ctx)
	if err != nil {
		return nil, err
	}

	return &response.AnalyticsResponse{
		Stats:       dashboardStats(bookings, lots),
		Timeline:    bookingTimeline(bookings),
		Utilization: lotUtilization(lots),
		PeakHours:   peakHours(bookings),
	}, nil
}

func dashboardStats(bookings []*entity.Booking, lots []response.ParkingLotResponse) response.DashboardStats {
	stats := response.DashboardStats{
		TotalParkings: len(lots),
		TotalBookings: len(bookings),
	}

	for _, b := range bookings {
		if b.Status == entity.BookingStatusConfirmed {
			stats.ActiveBookings++
		}
		stats.TotalRevenue += b.TotalAmount
	}

	if len(lots) > 0 {
		var sum float64
		for _, lot := range lots {
			sum += lot.Occupancy
		}
		stats.AvgOccupancy = math.Round(sum/float64(len(lots))*10) / 10
	}
	return stats
}

func bookingTimeline(bookings []*entity.Booking) []response.DailyBookings {
	byDate := make(map[string]*response.DailyBookings)
	for _, b := range bookings {
		day, ok := byDate[b.Date]
		if !ok {
			day = &response.DailyBookings{Date: b.Date}
			byDate[b.Date] = day
		}
		day.Count++
		day.Revenue += b.TotalAmount
	}

	timeline := make([]response.DailyBookings, 0, len(byDate))
	for _, day := range byDate {
		timeline = append(timeline, *day)
	}
	// YYYY-MM-DD sorts chronologically as text
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date < timeline[j].Date })

	if len(timeline) > timelineDays {
		timeline = timeline[len(timeline)-timelineDays:]
	}
	return timeline
}

func lotUtilization(lots []response.ParkingLotResponse) []response.LotUtilization {
	result := make([]response.LotUtilization, len(lots))
	for i, lot := range lots {
		result[i] = response.LotUtilization{
			ID:          lot.ID.String(),
			Name:        lot.Name,
			Utilization: int(math.Round(lot.Occupancy)),
		}
	}
	return result
}

func peakHours(bookings []*entity.Booking) []response.HourBucket {
	buckets := make([]response.HourBucket, 24)
	for hour := range buckets {
		buckets[hour].Hour = fmt.Sprintf("%d:00", hour)
	}

	for _, b := range bookings {
		hourText, _, _ := strings.Cut(b.StartTime, ":")
		hour, err := strconv.Atoi(hourText)
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		buckets[hour].Count++
	}
	return buckets
}
