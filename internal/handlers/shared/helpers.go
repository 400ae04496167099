package handlers

import (
	"errors"
	"io"

	"fleetpulse/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bindJSON decodes the request body into dest. An empty body leaves dest
// untouched so that presence checks report the first missing field.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(err)
		utils.BadRequestResponse(c, utils.MsgInvalidRequest)
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, utils.MsgInvalidID)
		return primitive.NilObjectID, false
	}
	return id, true
}
