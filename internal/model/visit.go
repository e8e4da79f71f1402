package model

import "time"

// VisitorNameDefault is stored when the caller does not give a name.
const VisitorNameDefault = "anonymous"

// Visit is a confirmed reservation binding a visitor to a slot.
// It is created together with the slot's reserved transition and never
// mutated afterwards.
type Visit struct {
	ID          int64     `json:"id"`
	HospitalID  string    `json:"hospital_id"`
	SlotID      int64     `json:"slot_id"`
	VisitorName string    `json:"visitor_name"`
	CreatedAt   time.Time `json:"created_at"`
}
