package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/healthlink/dispatch_engine/internal/models"
)

// Validator - граница валидации отчетов о происшествии
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор с json-именами полей и правилами self/bystander
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(reportStructLevel, models.EmergencyReport{})
	return &Validator{validate: v}
}

// Engine отдает базовый validator.Validate для проверки DTO в хэндлерах
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// ValidateReport возвращает *models.ValidationError со списком нарушений или nil
func (v *Validator) ValidateReport(report models.EmergencyReport) error {
	return v.Struct(report)
}

// Struct проверяет произвольную структуру и приводит ошибки к ValidationError
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &models.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

func reportStructLevel(sl validator.StructLevel) {
	report := sl.Current().Interface().(models.EmergencyReport)
	switch report.Type {
	case models.IncidentTypeBystander:
		if report.TriageAnswers == nil {
			sl.ReportError(report.TriageAnswers, "triageAnswers", "TriageAnswers", "required_bystander", "")
		}
		if report.Description != "" {
			sl.ReportError(report.Description, "description", "Description", "self_only", "")
		}
	case models.IncidentTypeSelf:
		if report.VictimDescription != "" {
			sl.ReportError(report.VictimDescription, "victimDescription", "VictimDescription", "bystander_only", "")
		}
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "required_bystander":
		return fmt.Sprintf("%q is required for bystander reports", field)
	case "self_only":
		return fmt.Sprintf("%q is only allowed for self reports", field)
	case "bystander_only":
		return fmt.Sprintf("%q is only allowed for bystander reports", field)
	case "latitude":
		return fmt.Sprintf("%q must be between -90 and 90", field)
	case "longitude":
		return fmt.Sprintf("%q must be between -180 and 180", field)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, fe.Param())
	case "uri":
		return fmt.Sprintf("%q must be a valid uri", field)
	}
	return fmt.Sprintf("%q failed on the %q rule", field, fe.Tag())
}
