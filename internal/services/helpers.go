package services

import (
	"errors"

	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const msgNameExists = "Name already exists"

// storeError converts a repository error into an AppError. A missing
// document becomes notFoundMsg, everything else is internal.
func storeError(err error, notFoundMsg, failureMsg string) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return utils.NewNotFoundError(notFoundMsg)
	}
	return utils.NewInternalError(failureMsg, err)
}

// writeError is storeError for inserts and updates, where a unique index
// rejection means the name is taken.
func writeError(err error, notFoundMsg, failureMsg, duplicateMsg string) error {
	if errors.Is(err, interfaces.ErrDuplicate) {
		return utils.NewConflictError(duplicateMsg)
	}
	return storeError(err, notFoundMsg, failureMsg)
}

// takenBy reports whether a lookup found a document that belongs to someone
// other than self.
func takenBy(found primitive.ObjectID, self *primitive.ObjectID) bool {
	return self == nil || found != *self
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.NewInternalError("Failed to hash password", err)
	}
	return string(hashed), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
