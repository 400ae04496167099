package validators

import (
	"fleetpulse/internal/models"
)

// ValidateDriverCreate checks presence of every field and then the format
// rules. Uniqueness is checked by the service against the store.
func ValidateDriverCreate(req *models.DriverRequest) error {
	if err := requirePresent(
		presence{"first_name", req.FirstName},
		presence{"last_name", req.LastName},
		presence{"username", req.Username},
		presence{"password", req.Password},
		presence{"phone_no", req.PhoneNo},
	); err != nil {
		return err
	}
	return ValidateStruct(req).First()
}

// ValidateDriverUpdate applies the format rules to the fields present.
func ValidateDriverUpdate(req *models.DriverRequest) error {
	return ValidateStruct(req).First()
}
