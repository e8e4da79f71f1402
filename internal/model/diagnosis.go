package model

import "time"

type EmergencyLevel string

const (
	EmergencyLevelLow      EmergencyLevel = "low"
	EmergencyLevelModerate EmergencyLevel = "moderate"
	EmergencyLevelHigh     EmergencyLevel = "high"
)

type DiagnosisReport struct {
	ID             int64          `json:"id"`
	Symptoms       string         `json:"symptoms"`
	EmergencyLevel EmergencyLevel `json:"emergency_level"`
	Summary        string         `json:"summary"`
	CreatedAt      time.Time      `json:"created_at"`
}
