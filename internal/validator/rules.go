package validator

import (
	"log"
	"regexp"

	"kazicare_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Letters and spaces, two characters minimum. Matches the registration
// form's name policy.
var personNameRe = regexp.MustCompile(`^[a-zA-Z\s]{2,}$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-person-name", validatePersonName)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-application-decision", validateApplicationDecision)
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNameRe.MatchString(fl.Field().String())
}

// Self-service registration never creates admins.
func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleEmployer, models.UserRoleHousekeeper:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	switch models.JobStatus(fl.Field().String()) {
	case models.JobStatusOpen, models.JobStatusClosed:
		return true
	default:
		return false
	}
}

func validateApplicationDecision(fl validator.FieldLevel) bool {
	switch models.ApplicationStatus(fl.Field().String()) {
	case models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
		return true
	default:
		return false
	}
}
