package utils

import "time"

// Application Constants
const (
	AppName    = "fleetpulse"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
	PasswordMinLength = 8

	// Emergency time-of-day rendering in the enriched listing
	EmergencyClockLayout = "03:04 pm"
)

// Cache Keys
const (
	CacheCarPrefix = "car:"
)

// Response messages shared by handlers
const (
	MsgInvalidRequest = "Invalid request body"
	MsgInvalidID      = "Invalid id"
	MsgUnauthorized   = "Not authorized to access this route"
	MsgTooManyRequest = "Too many requests"
)
