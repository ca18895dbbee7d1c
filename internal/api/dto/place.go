package dto

type PlaceSummaryResponse struct {
	PlaceID    string   `json:"place_id"`
	Type       string   `json:"type"`
	City       string   `json:"city"`
	Address    string   `json:"address"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	NameFa     string   `json:"name_fa"`
	NameEn     string   `json:"name_en"`
	Rating     *float64 `json:"rating"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

type ListPlacesResponse struct {
	Places []PlaceSummaryResponse `json:"places"`
}

type TranslationResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HotelResponse struct {
	Stars      *int   `json:"stars"`
	PriceRange string `json:"price_range"`
}

type RestaurantResponse struct {
	Cuisine  string `json:"cuisine"`
	AvgPrice *int   `json:"avg_price"`
}

type MuseumResponse struct {
	OpenAt      string `json:"open_at"`
	CloseAt     string `json:"close_at"`
	TicketPrice *int   `json:"ticket_price"`
}

type CommentResponse struct {
	Rating    *int   `json:"rating"`
	CreatedAt string `json:"created_at"`
}

type PlaceDetailResponse struct {
	PlaceID      string                         `json:"place_id"`
	Type         string                         `json:"type"`
	City         string                         `json:"city"`
	Address      string                         `json:"address"`
	Latitude     float64                        `json:"latitude"`
	Longitude    float64                        `json:"longitude"`
	Rating       *float64                       `json:"rating"`
	Translations map[string]TranslationResponse `json:"translations"`
	Amenities    []string                       `json:"amenities"`
	Hotel        *HotelResponse                 `json:"hotel,omitempty"`
	Restaurant   *RestaurantResponse            `json:"restaurant,omitempty"`
	Museum       *MuseumResponse                `json:"museum,omitempty"`
	Comments     []CommentResponse              `json:"comments"`
	Images       []string                       `json:"images"`
}

type RateRequest struct {
	Rating int `json:"rating"`
}
