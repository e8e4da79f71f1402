package model

import "time"

// Slot is a bookable hospital time window, unique per hospital and start time.
// A slot transitions from open to reserved exactly once and is never reopened.
type Slot struct {
	ID         int64      `json:"id"`
	HospitalID string     `json:"hospital_id"`
	StartTime  time.Time  `json:"start_time"`
	Reserved   bool       `json:"reserved"`
	ReservedAt *time.Time `json:"reserved_at"` // nil until reserved
	VisitID    *int64     `json:"visit_id"`    // nil until reserved
	CreatedAt  time.Time  `json:"created_at"`
}
