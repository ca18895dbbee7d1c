package dto

type RouteResponse struct {
	SourcePlaceID        string   `json:"source_place_id,omitempty"`
	DestinationPlaceID   string   `json:"destination_place_id,omitempty"`
	SourceName           string   `json:"source_name"`
	DestinationName      string   `json:"destination_name"`
	TravelMode           string   `json:"travel_mode"`
	DistanceKm           float64  `json:"distance_km"`
	ETAMinutes           int      `json:"eta_minutes"`
	ETASource            string   `json:"eta_source"`
	SourceAmenities      []string `json:"source_amenities"`
	DestinationAmenities []string `json:"destination_amenities"`
	SourceLat            float64  `json:"source_lat"`
	SourceLng            float64  `json:"source_lng"`
	DestLat              float64  `json:"dest_lat"`
	DestLng              float64  `json:"dest_lng"`
}

type FacilityResponse struct {
	PlaceID    string  `json:"place_id,omitempty"`
	Name       string  `json:"name_fa"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
	ETAMinutes int     `json:"eta_minutes"`
	Source     string  `json:"source"`
}

type EmergencyResponse struct {
	EmergencyPlaces []FacilityResponse `json:"emergency_places"`
}
