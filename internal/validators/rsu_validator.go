package validators

import (
	"fleetpulse/internal/models"
)

func ValidateRSUCreate(req *models.RSURequest) error {
	if err := requirePresent(
		presence{"name", req.Name},
		presence{"recommended_speed", req.RecommendedSpeed},
	); err != nil {
		return err
	}
	return ValidateStruct(req).First()
}

func ValidateRSUUpdate(req *models.RSURequest) error {
	return ValidateStruct(req).First()
}
