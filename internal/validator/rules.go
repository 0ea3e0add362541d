package validator

import (
	"log"

	"psfinder_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that cannot be registered is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("proficiency", validateProficiency)
	mustRegister("experience-level", validateExperienceLevel)
}

func validateProficiency(fl validator.FieldLevel) bool {
	switch models.Proficiency(fl.Field().String()) {
	case models.ProficiencyBeginner, models.ProficiencyIntermediate, models.ProficiencyExpert:
		return true
	}
	return false
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Beginner", "Intermediate", "Advanced":
		return true
	}
	return false
}
