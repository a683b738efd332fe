package tracker

import (
	"errors"
	"regexp"
	"strings"

	z "github.com/Oudwins/zog"
	"gorm.io/gorm"

	"liyu1981.xyz/sela-weight-tracker/pkg/clock"
	apperrors "liyu1981.xyz/sela-weight-tracker/pkg/errors"
	"liyu1981.xyz/sela-weight-tracker/pkg/models"
)

const (
	MaxWeight       = 300.0
	MedicalIDLength = 7
)

var (
	weightSchema    = z.Float64().GT(0).LTE(MaxWeight).Required()
	dateSchema      = z.String().Match(regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)).Required()
	medicalIDSchema = z.String().Match(regexp.MustCompile(`^\d{1,7}$`)).Required()
	nameSchema      = z.String().Min(1).Max(100).Required()
	codeSchema      = z.String().Min(1).Max(32).Required()
)

func validateWeight(weight float64) error {
	if issues := weightSchema.Validate(&weight); len(issues) > 0 {
		return apperrors.NewValidationError("weight %.2f is outside (0, %.0f]: %v", weight, MaxWeight, issues)
	}
	return nil
}

func validateDate(field string, date string) error {
	if issues := dateSchema.Validate(&date); len(issues) > 0 {
		return apperrors.NewValidationError("%s %q must be YYYY-MM-DD: %v", field, date, issues)
	}
	if _, err := clock.ParseDate(date); err != nil {
		return apperrors.NewValidationError("%s %q is not a calendar date", field, date)
	}
	return nil
}

func validateCode(field string, code string) error {
	if issues := codeSchema.Validate(&code); len(issues) > 0 {
		return apperrors.NewValidationError("%s is required: %v", field, issues)
	}
	return nil
}

// PadMedicalID left-pads a numeric medical identifier with zeros to seven digits.
func PadMedicalID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if issues := medicalIDSchema.Validate(&id); len(issues) > 0 {
		return "", apperrors.NewValidationError("medical id %q must be 1 to %d digits", id, MedicalIDLength)
	}
	return strings.Repeat("0", MedicalIDLength-len(id)) + id, nil
}

func validateGender(g models.Gender) error {
	switch g {
	case "", models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	}
	return apperrors.NewValidationError("gender %q must be one of M, F, O", g)
}

// notFound turns gorm's record-not-found into the core's NotFoundError.
func notFound(err error, resource string, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return err
}
