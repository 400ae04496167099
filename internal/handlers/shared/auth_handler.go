package handlers

import (
	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login exchanges a username and password for a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var request models.LoginRequest
	if !bindJSON(c, &request) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}
