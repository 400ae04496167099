package utils

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID converts a hex identifier into the store's native id type.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(id))
}

// ContainsPattern builds a case-insensitive substring match. A nil or empty
// value matches everything.
func ContainsPattern(value *string) primitive.Regex {
	if value == nil {
		return primitive.Regex{Pattern: "", Options: "i"}
	}
	return primitive.Regex{Pattern: regexp.QuoteMeta(*value), Options: "i"}
}
