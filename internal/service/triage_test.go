package service

import (
	"testing"

	"github.com/healthlink/dispatch_engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func answers(conscious, breathing, bleeding bool) *models.TriageInput {
	return &models.TriageInput{Conscious: &conscious, Breathing: &breathing, Bleeding: &bleeding}
}

func TestTriage(t *testing.T) {
	tests := []struct {
		name          string
		report        models.EmergencyReport
		severity      models.Severity
		ambulanceType string
		services      []models.ServiceKind
	}{
		{
			name:          "not breathing requests CPR volunteer",
			report:        models.EmergencyReport{Type: models.IncidentTypeBystander, TriageAnswers: answers(false, false, false)},
			severity:      models.SeverityCritical,
			ambulanceType: models.AmbulanceAdvanced,
			services:      []models.ServiceKind{models.ServiceAmbulance, models.ServiceVolunteer},
		},
		{
			name:          "unconscious but breathing",
			report:        models.EmergencyReport{Type: models.IncidentTypeBystander, TriageAnswers: answers(false, true, false)},
			severity:      models.SeverityCritical,
			ambulanceType: models.AmbulanceAdvanced,
			services:      []models.ServiceKind{models.ServiceAmbulance},
		},
		{
			name:          "bleeding",
			report:        models.EmergencyReport{Type: models.IncidentTypeBystander, TriageAnswers: answers(true, true, true), RequestBlood: true},
			severity:      models.SeverityHigh,
			ambulanceType: models.AmbulanceBasic,
			services:      []models.ServiceKind{models.ServiceAmbulance, models.ServiceBloodDonor},
		},
		{
			name:          "stable victim with volunteer requested",
			report:        models.EmergencyReport{Type: models.IncidentTypeBystander, TriageAnswers: answers(true, true, false), RequestVolunteer: true},
			severity:      models.SeverityModerate,
			ambulanceType: models.AmbulanceBasic,
			services:      []models.ServiceKind{models.ServiceAmbulance, models.ServiceVolunteer},
		},
		{
			name:          "self report with description",
			report:        models.EmergencyReport{Type: models.IncidentTypeSelf, Description: "chest pain"},
			severity:      models.SeverityHigh,
			ambulanceType: models.AmbulanceBasic,
			services:      []models.ServiceKind{models.ServiceAmbulance},
		},
		{
			name:          "self report without description",
			report:        models.EmergencyReport{Type: models.IncidentTypeSelf, Description: "   "},
			severity:      models.SeverityModerate,
			ambulanceType: models.AmbulanceBasic,
			services:      []models.ServiceKind{models.ServiceAmbulance},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := triage(tt.report)
			assert.Equal(t, tt.severity, res.severity)
			assert.Equal(t, tt.ambulanceType, res.ambulanceType)
			assert.Equal(t, tt.services, res.services)
		})
	}
}
