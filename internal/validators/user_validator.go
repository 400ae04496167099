package validators

import (
	"strings"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

const msgInvalidCredentials = "Invalid credentials"

// ValidateLogin rejects credentials that could never match a stored user.
func ValidateLogin(req *models.LoginRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return utils.NewValidationError("Please add a username")
	}
	if req.Password == "" {
		return utils.NewValidationError("Please add a password")
	}
	if !noSpaceRegex.MatchString(username) || !passwordRegex.MatchString(req.Password) {
		return utils.NewValidationError(msgInvalidCredentials)
	}
	return nil
}
