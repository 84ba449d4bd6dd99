package models

// ReportLocation - координаты в отчете; указатели отличают "0" от "не передано"
type ReportLocation struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// TriageInput - ответы очевидца
type TriageInput struct {
	Conscious *bool `json:"conscious" validate:"required"`
	Breathing *bool `json:"breathing" validate:"required"`
	Bleeding  *bool `json:"bleeding" validate:"required"`
}

// EmergencyReport - типизированный отчет, приходящий на границу валидации
type EmergencyReport struct {
	Type              IncidentType    `json:"type" validate:"required,oneof=self bystander"`
	Location          *ReportLocation `json:"location" validate:"required"`
	Address           string          `json:"address,omitempty" validate:"max=500"`
	Description       string          `json:"description,omitempty" validate:"max=1000"`
	TriageAnswers     *TriageInput    `json:"triageAnswers,omitempty"`
	VictimDescription string          `json:"victimDescription,omitempty" validate:"max=500"`
	PhotoURL          string          `json:"photoUrl,omitempty" validate:"omitempty,uri"`
	RequestBlood      bool            `json:"requestBlood"`
	RequestVolunteer  bool            `json:"requestVolunteer"`
	BloodGroup        string          `json:"bloodGroup,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

// Triage возвращает ответы триажа как значения (nil, если их нет)
func (r EmergencyReport) Triage() *TriageAnswers {
	if r.TriageAnswers == nil {
		return nil
	}
	t := &TriageAnswers{}
	if r.TriageAnswers.Conscious != nil {
		t.Conscious = *r.TriageAnswers.Conscious
	}
	if r.TriageAnswers.Breathing != nil {
		t.Breathing = *r.TriageAnswers.Breathing
	}
	if r.TriageAnswers.Bleeding != nil {
		t.Bleeding = *r.TriageAnswers.Bleeding
	}
	return t
}
