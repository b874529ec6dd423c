package response

import (
	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
)

type SearchResponse struct {
	Center   geo.Coordinates          `json:"center"`
	RadiusKm float64                  `json:"radius_km"`
	Source   entity.CatalogSource     `json:"source"`
	Count    int                      `json:"count"`
	Parkings []entity.ParkingLocation `json:"parkings"`
}

type ParkingLotResponse struct {
	entity.ParkingLot
	Occupancy float64 `json:"occupancy"`
}

func NewParkingLotResponse(lot *entity.ParkingLot) ParkingLotResponse {
	return ParkingLotResponse{ParkingLot: *lot, Occupancy: lot.Occupancy()}
}
