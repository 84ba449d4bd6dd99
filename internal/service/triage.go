package service

import (
	"strings"

	"github.com/healthlink/dispatch_engine/internal/models"
)

const cprCertification = "cpr"

// triageResult - классификация отчета и набор запрашиваемых услуг
type triageResult struct {
	severity      models.Severity
	ambulanceType string
	needsCPR      bool
	services      []models.ServiceKind
}

// triage классифицирует отчет: очевидец отвечает на вопросы о пострадавшем,
// сам пострадавший - описанием.
func triage(report models.EmergencyReport) triageResult {
	res := triageResult{
		severity:      models.SeverityModerate,
		ambulanceType: models.AmbulanceBasic,
	}

	switch report.Type {
	case models.IncidentTypeBystander:
		answers := report.Triage()
		if answers == nil {
			break
		}
		switch {
		case !answers.Breathing:
			res.severity = models.SeverityCritical
			res.ambulanceType = models.AmbulanceAdvanced
			res.needsCPR = true
		case !answers.Conscious:
			res.severity = models.SeverityCritical
			res.ambulanceType = models.AmbulanceAdvanced
		case answers.Bleeding:
			res.severity = models.SeverityHigh
		}
	case models.IncidentTypeSelf:
		if strings.TrimSpace(report.Description) != "" {
			res.severity = models.SeverityHigh
		}
	}

	res.services = []models.ServiceKind{models.ServiceAmbulance}
	if report.RequestVolunteer || res.needsCPR {
		res.services = append(res.services, models.ServiceVolunteer)
	}
	if report.RequestBlood {
		res.services = append(res.services, models.ServiceBloodDonor)
	}
	return res
}
