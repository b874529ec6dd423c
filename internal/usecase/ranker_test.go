package usecase

import (
	"errors"
	"reflect"
	"testing"

	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
)

var origin = geo.Coordinates{Lat: 0, Lng: 0}

// pointAt returns a coordinate roughly km kilometres north of origin.
func pointAt(km float64) geo.Coordinates {
	return geo.Coordinates{Lat: km / 111.195, Lng: 0}
}

func ids(locations []entity.ParkingLocation) []string {
	result := make([]string, len(locations))
	for i, l := range locations {
		result[i] = l.ID
	}
	return result
}

func TestRankMinAvailability(t *testing.T) {
	venues := []entity.Venue{
		{ID: "a", Location: pointAt(1)},
		{ID: "b", Location: pointAt(2)},
		{ID: "c", Location: pointAt(3)},
	}
	availability := map[string]entity.AvailabilityRecord{
		"a": {TotalSlots: 100, AvailableSlots: 10},
		"b": {TotalSlots: 100, AvailableSlots: 55},
		"c": {TotalSlots: 100, AvailableSlots: 90},
	}

	ranked, err := Rank(venues, availability, origin, Filters{MinAvailability: 50})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if got := ids(ranked); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("ids = %v, want [b c]", got)
	}
}

func TestRankSortsByDistance(t *testing.T) {
	venues := []entity.Venue{
		{ID: "five", Location: pointAt(5)},
		{ID: "one", Location: pointAt(1)},
		{ID: "three", Location: pointAt(3)},
	}
	availability := map[string]entity.AvailabilityRecord{
		"five":  {TotalSlots: 10, AvailableSlots: 5},
		"one":   {TotalSlots: 10, AvailableSlots: 5},
		"three": {TotalSlots: 10, AvailableSlots: 5},
	}

	ranked, err := Rank(venues, availability, origin, Filters{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if got := ids(ranked); !reflect.DeepEqual(got, []string{"one", "three", "five"}) {
		t.Fatalf("ids = %v, want [one three five]", got)
	}
	if venues[0].ID != "five" {
		t.Fatal("Rank reordered its input")
	}
}

func TestRankFiltersAndSortKeys(t *testing.T) {
	venues := []entity.Venue{
		{ID: "near-cheap", Location: pointAt(1), Rating: 3.5, Type: entity.ParkingTypeOpen},
		{ID: "mid-covered", Location: pointAt(4), Rating: 4.8, Type: entity.ParkingTypeCovered},
		{ID: "far-pricey", Location: pointAt(8), Rating: 4.2, Type: entity.ParkingTypeCovered},
		{ID: "outside", Location: pointAt(30), Rating: 5, Type: entity.ParkingTypeOpen},
	}
	availability := map[string]entity.AvailabilityRecord{
		"near-cheap":  {TotalSlots: 100, AvailableSlots: 20, Price: 20},
		"mid-covered": {TotalSlots: 100, AvailableSlots: 70, Price: 40},
		"far-pricey":  {TotalSlots: 100, AvailableSlots: 40, Price: 80},
		"outside":     {TotalSlots: 100, AvailableSlots: 100, Price: 10},
	}

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"radius", Filters{RadiusKm: 10}, []string{"near-cheap", "mid-covered", "far-pricey"}},
		{"max price inclusive", Filters{RadiusKm: 10, MaxPrice: 40}, []string{"near-cheap", "mid-covered"}},
		{"type case insensitive", Filters{RadiusKm: 10, Type: "covered"}, []string{"mid-covered", "far-pricey"}},
		{"type all", Filters{RadiusKm: 10, Type: "All"}, []string{"near-cheap", "mid-covered", "far-pricey"}},
		{"min rating inclusive", Filters{RadiusKm: 10, MinRating: 4.2}, []string{"mid-covered", "far-pricey"}},
		{"sort price", Filters{SortBy: SortByPrice}, []string{"outside", "near-cheap", "mid-covered", "far-pricey"}},
		{"sort availability", Filters{RadiusKm: 10, SortBy: SortByAvailability}, []string{"mid-covered", "far-pricey", "near-cheap"}},
		{"sort rating", Filters{SortBy: SortByRating}, []string{"outside", "mid-covered", "far-pricey", "near-cheap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := Rank(venues, availability, origin, tt.filters)
			if err != nil {
				t.Fatalf("Rank: %v", err)
			}
			if got := ids(ranked); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankDerivedFields(t *testing.T) {
	venues := []entity.Venue{{ID: "a", Location: pointAt(0.5), Source: entity.CatalogSourceFallback}}
	availability := map[string]entity.AvailabilityRecord{"a": {TotalSlots: 40, AvailableSlots: 10, Price: 25}}

	ranked, err := Rank(venues, availability, origin, Filters{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	got := ranked[0]
	if got.AvailabilityPercentage != 25 {
		t.Errorf("percentage = %v, want 25", got.AvailabilityPercentage)
	}
	if got.MarkerColor != entity.MarkerYellow {
		t.Errorf("marker = %s, want yellow", got.MarkerColor)
	}
	if got.DistanceText != "500m" {
		t.Errorf("distance text = %q, want 500m", got.DistanceText)
	}
	if got.Price != 25 || got.Source != entity.CatalogSourceFallback {
		t.Errorf("joined record = %+v", got)
	}
}

func TestRankZeroCapacity(t *testing.T) {
	venues := []entity.Venue{{ID: "a"}}
	availability := map[string]entity.AvailabilityRecord{"a": {}}

	ranked, err := Rank(venues, availability, origin, Filters{})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if ranked[0].AvailabilityPercentage != 0 || ranked[0].MarkerColor != entity.MarkerRed {
		t.Fatalf("zero capacity = %+v", ranked[0])
	}
}

func TestRankMissingAvailability(t *testing.T) {
	venues := []entity.Venue{{ID: "a"}, {ID: "b"}}
	availability := map[string]entity.AvailabilityRecord{"a": {TotalSlots: 1}}

	if _, err := Rank(venues, availability, origin, Filters{}); !errors.Is(err, ErrDataIntegrity) {
		t.Fatalf("err = %v, want ErrDataIntegrity", err)
	}
}
