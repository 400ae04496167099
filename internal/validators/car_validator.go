package validators

import (
	"fleetpulse/internal/models"
)

// ValidateCarCreate requires a name. A driver reference is optional and its
// existence is checked by the service.
func ValidateCarCreate(req *models.CarRequest) error {
	if err := requirePresent(presence{"name", req.Name}); err != nil {
		return err
	}
	return ValidateStruct(req).First()
}

func ValidateCarUpdate(req *models.CarRequest) error {
	return ValidateStruct(req).First()
}
