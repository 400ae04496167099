package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmergencyStatus string

const (
	EmergencyStatusPending    EmergencyStatus = "pending"
	EmergencyStatusInProgress EmergencyStatus = "inProgress"
	EmergencyStatusComplete   EmergencyStatus = "complete"
)

// EmergencyEvent is the live channel event name for emergency state changes.
const EmergencyEvent = "emergency"

func (s EmergencyStatus) IsValid() bool {
	switch s {
	case EmergencyStatusPending, EmergencyStatusInProgress, EmergencyStatusComplete:
		return true
	}
	return false
}

type Emergency struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CarID     primitive.ObjectID `json:"car_id" bson:"car_id"`
	Status    EmergencyStatus    `json:"status" bson:"status"`
	Latitude  float64            `json:"latitude" bson:"latitude"`
	Longitude float64            `json:"longitude" bson:"longitude"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// EmergencyInput is the raw create/update body shared by the HTTP handler and
// the queue consumer. Fields stay untyped so that wrong JSON types can be
// reported with a field specific message instead of a decode error.
type EmergencyInput struct {
	CarID     interface{} `json:"car_id"`
	Status    interface{} `json:"status"`
	Latitude  interface{} `json:"latitude"`
	Longitude interface{} `json:"longitude"`
}

// EmergencyDraft is a syntactically valid create request.
type EmergencyDraft struct {
	CarID     primitive.ObjectID
	Status    EmergencyStatus
	Latitude  float64
	Longitude float64
}

// EmergencyPatch holds the fields present in an update request.
type EmergencyPatch struct {
	CarID     *primitive.ObjectID
	Status    *EmergencyStatus
	Latitude  *float64
	Longitude *float64
}

func (p *EmergencyPatch) IsEmpty() bool {
	return p.CarID == nil && p.Status == nil && p.Latitude == nil && p.Longitude == nil
}

// EmergencyPayload is the canonical representation sent to HTTP callers and
// live subscribers.
type EmergencyPayload struct {
	ID        primitive.ObjectID `json:"id"`
	CarID     primitive.ObjectID `json:"car_id"`
	Status    EmergencyStatus    `json:"status"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
}

func (e *Emergency) Payload() EmergencyPayload {
	return EmergencyPayload{
		ID:        e.ID,
		CarID:     e.CarID,
		Status:    e.Status,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}
}

// EmergencyListItem is one row of the enriched emergency listing.
type EmergencyListItem struct {
	ID            primitive.ObjectID `json:"id" bson:"id"`
	Status        EmergencyStatus    `json:"status" bson:"status"`
	CarID         primitive.ObjectID `json:"car_id" bson:"car_id"`
	CarName       string             `json:"car_name" bson:"car_name"`
	DriverPhoneNo string             `json:"driver_phone_no" bson:"driver_phone_no"`
	Time          string             `json:"time" bson:"-"`
	CreatedAt     time.Time          `json:"-" bson:"created_at"`
}
