package auth

import (
	"errors"

	"kazicare_backend/internal/models"
)

// Role permissions for the three actor kinds.
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		"users:read",
		"users:verify",
		"jobs:read",
		"jobs:verify",
	},
	models.UserRoleEmployer: {
		"jobs:read",
		"jobs:write:self",
		"applications:read:own-jobs",
		"applications:decide:own-jobs",
	},
	models.UserRoleHousekeeper: {
		"jobs:read",
		"applications:write:self",
		"applications:read:self",
	},
}

func HasPermission(role models.UserRole, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func IsAdmin(claims *Claims) bool {
	return claims.Role == string(models.UserRoleAdmin)
}

// ValidateRole rejects anything outside the three known roles.
func ValidateRole(role string) error {
	switch models.UserRole(role) {
	case models.UserRoleAdmin, models.UserRoleEmployer, models.UserRoleHousekeeper:
		return nil
	default:
		return errors.New("invalid role")
	}
}

// ValidateRegistrationRole additionally refuses self-service admin signup.
func ValidateRegistrationRole(role string) error {
	switch models.UserRole(role) {
	case models.UserRoleEmployer, models.UserRoleHousekeeper:
		return nil
	default:
		return errors.New("role must be employer or housekeeper")
	}
}
