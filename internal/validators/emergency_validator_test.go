package validators

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/utils"
)

func decodeInput(t *testing.T, body string) models.EmergencyInput {
	t.Helper()
	var in models.EmergencyInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestValidateEmergencyCreate(t *testing.T) {
	carID := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing car_id", `{"latitude":1,"longitude":1}`, "Please add a car_id"},
		{"empty car_id", `{"car_id":"","latitude":1,"longitude":1}`, "Please add a car_id"},
		{"malformed car_id", `{"car_id":"abc","latitude":1,"longitude":1}`, "Invalid car_id"},
		{"numeric car_id", `{"car_id":12,"latitude":1,"longitude":1}`, "Invalid car_id"},
		{"unknown status", `{"car_id":"` + carID + `","status":"done","latitude":1,"longitude":1}`, "Status should be pending, inProgress or complete"},
		{"missing latitude", `{"car_id":"` + carID + `","longitude":1}`, "Please add a latitude"},
		{"string latitude", `{"car_id":"` + carID + `","latitude":"north","longitude":1}`, "Latitude should be number"},
		{"numeric string latitude", `{"car_id":"` + carID + `","latitude":"40.1","longitude":1}`, "Latitude should be number"},
		{"missing longitude", `{"car_id":"` + carID + `","latitude":1}`, "Please add a longitude"},
		{"bool longitude", `{"car_id":"` + carID + `","latitude":1,"longitude":true}`, "Longitude should be number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateEmergencyCreate(decodeInput(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, utils.MessageOf(err))
			assert.True(t, utils.IsKind(err, utils.KindValidation))
		})
	}
}

func TestValidateEmergencyCreate_DefaultsStatus(t *testing.T) {
	carID := primitive.NewObjectID()

	draft, err := ValidateEmergencyCreate(decodeInput(t, `{"car_id":"`+carID.Hex()+`","latitude":40.0,"longitude":-73.0}`))
	require.NoError(t, err)

	assert.Equal(t, carID, draft.CarID)
	assert.Equal(t, models.EmergencyStatusPending, draft.Status)
	assert.Equal(t, 40.0, draft.Latitude)
	assert.Equal(t, -73.0, draft.Longitude)
}

func TestValidateEmergencyCreate_ZeroCoordinatesAreValues(t *testing.T) {
	carID := primitive.NewObjectID().Hex()

	draft, err := ValidateEmergencyCreate(decodeInput(t, `{"car_id":"`+carID+`","status":"inProgress","latitude":0,"longitude":0}`))
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusInProgress, draft.Status)
	assert.Zero(t, draft.Latitude)
	assert.Zero(t, draft.Longitude)
}

func TestValidateEmergencyUpdate(t *testing.T) {
	t.Run("only status", func(t *testing.T) {
		patch, err := ValidateEmergencyUpdate(decodeInput(t, `{"status":"complete"}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Status)
		assert.Equal(t, models.EmergencyStatusComplete, *patch.Status)
		assert.Nil(t, patch.CarID)
		assert.Nil(t, patch.Latitude)
		assert.Nil(t, patch.Longitude)
	})

	t.Run("empty body", func(t *testing.T) {
		patch, err := ValidateEmergencyUpdate(decodeInput(t, `{}`))
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := ValidateEmergencyUpdate(decodeInput(t, `{"status":"closed"}`))
		assert.Equal(t, "Status should be pending, inProgress or complete", utils.MessageOf(err))
	})

	t.Run("non numeric longitude", func(t *testing.T) {
		_, err := ValidateEmergencyUpdate(decodeInput(t, `{"longitude":"east"}`))
		assert.Equal(t, "Longitude should be number", utils.MessageOf(err))
	})

	t.Run("malformed car_id", func(t *testing.T) {
		_, err := ValidateEmergencyUpdate(decodeInput(t, `{"car_id":"nope"}`))
		assert.Equal(t, "Invalid car_id", utils.MessageOf(err))
	})
}
