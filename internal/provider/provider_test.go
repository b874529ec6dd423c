package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

func mapsServer(t *testing.T, path string, handler func(w http.ResponseWriter, r *http.Request)) utils.MapsConfig {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return utils.MapsConfig{APIKey: "test-key", BaseURL: srv.URL, Country: "in", Timeout: time.Second}
}

func TestNearbyParkingDecodesResults(t *testing.T) {
	config := mapsServer(t, "/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "parking" || q.Get("radius") != "5000" || q.Get("key") != "test-key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"place_id": "p1", "name": "Select Citywalk Parking", "vicinity": "Saket",
				 "geometry": {"location": {"lat": 28.528, "lng": 77.219}},
				 "types": ["parking", "shopping_mall"], "rating": 4.4},
				{"place_id": "p2", "formatted_address": "IGI Airport T3",
				 "geometry": {"location": {"lat": 28.556, "lng": 77.100}},
				 "types": ["parking", "airport"]},
				{"name": "no id"}
			]
		}`))
	})

	places := NewGooglePlaces(config, zap.NewNop())
	venues, err := places.NearbyParking(context.Background(), geo.Coordinates{Lat: 28.5, Lng: 77.2}, 5000)
	if err != nil {
		t.Fatalf("NearbyParking: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("got %d venues, want 2", len(venues))
	}

	first, second := venues[0], venues[1]
	if first.Type != entity.ParkingTypeCovered || first.Address != "Saket" || first.Rating != 4.4 {
		t.Errorf("first = %+v", first)
	}
	if second.Type != entity.ParkingTypeMultiLevel || second.Name != "Parking 2" || second.Address != "IGI Airport T3" || second.Rating != defaultRating {
		t.Errorf("second = %+v", second)
	}
	if first.Source != entity.CatalogSourceLive {
		t.Errorf("source = %s, want live", first.Source)
	}
}

func TestNearbyParkingStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		denied bool
	}{
		{"denied", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`, true},
		{"quota", http.StatusOK, `{"status":"OVER_QUERY_LIMIT"}`, true},
		{"unknown", http.StatusOK, `{"status":"UNKNOWN_ERROR"}`, false},
		{"http error", http.StatusServiceUnavailable, `oops`, false},
		{"bad json", http.StatusOK, `{`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := mapsServer(t, "/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := NewGooglePlaces(config, zap.NewNop()).NearbyParking(context.Background(), geo.Coordinates{}, 1000)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrProviderDenied); got != tt.denied {
				t.Fatalf("errors.Is(ErrProviderDenied) = %v, want %v (%v)", got, tt.denied, err)
			}
		})
	}
}

func TestNearbyParkingZeroResults(t *testing.T) {
	config := mapsServer(t, "/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	venues, err := NewGooglePlaces(config, zap.NewNop()).NearbyParking(context.Background(), geo.Coordinates{}, 1000)
	if err != nil || len(venues) != 0 {
		t.Fatalf("NearbyParking = %v, %v; want empty, nil", venues, err)
	}
}

func TestParkingTypeFor(t *testing.T) {
	tests := []struct {
		types []string
		want  entity.ParkingType
	}{
		{[]string{"parking", "shopping_mall"}, entity.ParkingTypeCovered},
		{[]string{"parking", "airport"}, entity.ParkingTypeMultiLevel},
		{[]string{"parking"}, entity.ParkingTypeOpen},
		{[]string{"shopping_mall"}, entity.ParkingTypeOpen},
		{nil, entity.ParkingTypeOpen},
	}
	for _, tt := range tests {
		if got := ParkingTypeFor(tt.types); got != tt.want {
			t.Errorf("ParkingTypeFor(%v) = %s, want %s", tt.types, got, tt.want)
		}
	}
}

func TestSuggestRestrictsCountry(t *testing.T) {
	config := mapsServer(t, "/maps/api/place/autocomplete/json", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("components"); got != "country:in" {
			t.Errorf("components = %q", got)
		}
		w.Write([]byte(`{"status":"OK","predictions":[{"description":"Connaught Place, New Delhi","place_id":"cp"}]}`))
	})

	resolver := NewGoogleLocationResolver(config, zap.NewNop())
	suggestions, err := resolver.Suggest(context.Background(), "connaught", "in")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].DisplayName != "Connaught Place, New Delhi" || suggestions[0].PlaceID != "cp" {
		t.Fatalf("suggestions = %+v", suggestions)
	}
}

func TestResolvePlaceID(t *testing.T) {
	config := mapsServer(t, "/maps/api/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("place_id") {
		case "cp":
			w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":28.6304,"lng":77.2177}}}]}`))
		default:
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		}
	})

	resolver := NewGoogleLocationResolver(config, zap.NewNop())

	coords, err := resolver.Resolve(context.Background(), "cp")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if coords != (geo.Coordinates{Lat: 28.6304, Lng: 77.2177}) {
		t.Fatalf("coords = %+v", coords)
	}

	if _, err := resolver.Resolve(context.Background(), "nowhere"); err == nil {
		t.Fatal("Resolve of unknown place should fail")
	}
}

func TestPredictionClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		var input entity.PredictionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode: %v", err)
		}
		if input.ParkingID != "P1" || input.DayOfWeek != 0 || input.Hour != 18 || input.TotalSlots != 100 {
			t.Errorf("input = %+v", input)
		}
		w.Write([]byte(`{"success":true,"predictedFreeSlots":12,"predictedOccupancy":88,"crowdLevel":"High","color":"red","suggestion":"Very busy!"}`))
	})
	mux.HandleFunc("/predict_future", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"forecast":[{"hour":"8:00","occupancy_percentage":20,"free_slots":80},{"hour":"9:00","occupancy_percentage":50,"free_slots":50}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewPredictionClient(utils.PredictionConfig{URL: srv.URL + "/", Timeout: time.Second}, zap.NewNop())

	prediction, err := client.Predict(context.Background(), entity.PredictionInput{ParkingID: "P1", TotalSlots: 100, DayOfWeek: 0, Hour: 18})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !prediction.Success || prediction.PredictedFreeSlots != 12 || prediction.CrowdLevel != entity.CrowdHigh {
		t.Fatalf("prediction = %+v", prediction)
	}

	forecast, err := client.Forecast(context.Background(), "2026-03-08", 100)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(forecast.Points) != 2 || forecast.Points[1].Hour != "9:00" || forecast.Points[1].FreeSlots != 50 {
		t.Fatalf("forecast = %+v", forecast)
	}
}

func TestPredictionClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewPredictionClient(utils.PredictionConfig{URL: url, Timeout: time.Second}, zap.NewNop())
	if _, err := client.Predict(context.Background(), entity.PredictionInput{}); err == nil {
		t.Fatal("expected transport error")
	}
}
