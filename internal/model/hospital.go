package model

// Hospital is read-only reference data, provisioned by migrations.
type Hospital struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"` // stored reference value, no geocoding
}
