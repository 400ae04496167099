package validators

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

const (
	msgMissingCarID     = "Please add a car_id"
	msgInvalidCarID     = "Invalid car_id"
	msgInvalidStatus    = "Status should be pending, inProgress or complete"
	msgMissingLatitude  = "Please add a latitude"
	msgInvalidLatitude  = "Latitude should be number"
	msgMissingLongitude = "Please add a longitude"
	msgInvalidLongitude = "Longitude should be number"
)

// ValidateEmergencyCarID runs the car_id rules alone so the referenced car
// can be resolved before status and coordinates are checked.
func ValidateEmergencyCarID(input models.EmergencyInput) (primitive.ObjectID, error) {
	if isAbsent(input.CarID) {
		return primitive.NilObjectID, utils.NewValidationError(msgMissingCarID)
	}
	return parseCarID(input.CarID)
}

// ValidateEmergencyPatchCarID is ValidateEmergencyCarID for partial updates.
// It returns nil when car_id is not provided.
func ValidateEmergencyPatchCarID(input models.EmergencyInput) (*primitive.ObjectID, error) {
	if isAbsent(input.CarID) {
		return nil, nil
	}
	carID, err := parseCarID(input.CarID)
	if err != nil {
		return nil, err
	}
	return &carID, nil
}

// ValidateEmergencyCreate is the single rule set shared by the HTTP and the
// queue entry points. It checks shape only.
func ValidateEmergencyCreate(input models.EmergencyInput) (models.EmergencyDraft, error) {
	var draft models.EmergencyDraft

	carID, err := ValidateEmergencyCarID(input)
	if err != nil {
		return draft, err
	}
	draft.CarID = carID

	draft.Status = models.EmergencyStatusPending
	if !isAbsent(input.Status) {
		status, err := parseStatus(input.Status)
		if err != nil {
			return draft, err
		}
		draft.Status = status
	}

	if isAbsent(input.Latitude) {
		return draft, utils.NewValidationError(msgMissingLatitude)
	}
	lat, ok := toFloat(input.Latitude)
	if !ok {
		return draft, utils.NewValidationError(msgInvalidLatitude)
	}
	draft.Latitude = lat

	if isAbsent(input.Longitude) {
		return draft, utils.NewValidationError(msgMissingLongitude)
	}
	lng, ok := toFloat(input.Longitude)
	if !ok {
		return draft, utils.NewValidationError(msgInvalidLongitude)
	}
	draft.Longitude = lng

	return draft, nil
}

// ValidateEmergencyUpdate applies the same rules to the fields present.
func ValidateEmergencyUpdate(input models.EmergencyInput) (models.EmergencyPatch, error) {
	var patch models.EmergencyPatch

	carID, err := ValidateEmergencyPatchCarID(input)
	if err != nil {
		return patch, err
	}
	patch.CarID = carID

	if !isAbsent(input.Status) {
		status, err := parseStatus(input.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	if input.Latitude != nil {
		lat, ok := toFloat(input.Latitude)
		if !ok {
			return patch, utils.NewValidationError(msgInvalidLatitude)
		}
		patch.Latitude = &lat
	}

	if input.Longitude != nil {
		lng, ok := toFloat(input.Longitude)
		if !ok {
			return patch, utils.NewValidationError(msgInvalidLongitude)
		}
		patch.Longitude = &lng
	}

	return patch, nil
}

// isAbsent treats null and the empty string as not provided. Zero numbers
// are values.
func isAbsent(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

func parseCarID(v interface{}) (primitive.ObjectID, error) {
	s, ok := v.(string)
	if !ok {
		return primitive.NilObjectID, utils.NewValidationError(msgInvalidCarID)
	}
	id, err := utils.ParseObjectID(s)
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError(msgInvalidCarID)
	}
	return id, nil
}

func parseStatus(v interface{}) (models.EmergencyStatus, error) {
	s, ok := v.(string)
	if !ok || !models.EmergencyStatus(s).IsValid() {
		return "", utils.NewValidationError(msgInvalidStatus)
	}
	return models.EmergencyStatus(s), nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
