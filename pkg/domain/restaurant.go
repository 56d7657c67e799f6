package domain

// Restaurant is a nearby-search result from the discovery endpoint.
type Restaurant struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	DistanceKm  float64 `json:"distanceKm,omitempty"`
}
