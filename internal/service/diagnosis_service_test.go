package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medivoice-api/internal/model"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		symptoms string
		want     model.EmergencyLevel
	}{
		{"severe pain", "Severe abdominal pain since morning", model.EmergencyLevelHigh},
		{"chest pain", "dull chest pain when breathing", model.EmergencyLevelHigh},
		{"japanese high", "激しい頭痛があります", model.EmergencyLevelHigh},
		{"loss of consciousness", "一時的に意識を失いました", model.EmergencyLevelHigh},
		{"fever", "I have had a fever for two days", model.EmergencyLevelModerate},
		{"38 degrees", "temperature is 38.5", model.EmergencyLevelModerate},
		{"japanese moderate", "少しめまいがします", model.EmergencyLevelModerate},
		{"mild", "slight runny nose", model.EmergencyLevelLow},
		{"high wins over moderate", "severe fever", model.EmergencyLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, summary := Evaluate(tt.symptoms)
			assert.Equal(t, tt.want, level)
			assert.Contains(t, summary, string(tt.want))
		})
	}
}
