package venueservice

// Venue модель спортивной площадки из VenueService
type Venue struct {
	ID           int64    `json:"id"`
	OwnerID      int64    `json:"owner_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	SportsTypes  []string `json:"sports_types"`
	Amenities    []string `json:"amenities"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	PricePerHour float64  `json:"price_per_hour"`
	IsApproved   bool     `json:"is_approved"`
}

// OperatingHours рабочие часы корта (время суток, одинаковые на все дни)
type OperatingHours struct {
	Start string `json:"start"` // "06:00"
	End   string `json:"end"`   // "23:00"
}

// Court модель корта из VenueService
type Court struct {
	ID             int64          `json:"id"`
	VenueID        int64          `json:"venue_id"`
	Name           string         `json:"name"`
	SportType      string         `json:"sport_type"`
	PricePerHour   float64        `json:"price_per_hour"`
	OperatingHours OperatingHours `json:"operating_hours"`
	IsActive       bool           `json:"is_active"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
