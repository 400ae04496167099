package handlers

import (
	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	emergencyService services.EmergencyService
}

func NewEmergencyHandler(emergencyService services.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyService: emergencyService,
	}
}

// GetEmergencies lists emergencies joined with their car and driver
func (h *EmergencyHandler) GetEmergencies(c *gin.Context) {
	emergencies, err := h.emergencyService.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(emergencies), emergencies)
}

// CreateEmergency creates an emergency and notifies live subscribers
func (h *EmergencyHandler) CreateEmergency(c *gin.Context) {
	var input models.EmergencyInput
	if !bindJSON(c, &input) {
		return
	}

	emergency, err := h.emergencyService.Create(c.Request.Context(), input, services.SourceHTTP)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, emergency)
}

// UpdateEmergency applies a partial update and notifies live subscribers
func (h *EmergencyHandler) UpdateEmergency(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input models.EmergencyInput
	if !bindJSON(c, &input) {
		return
	}

	emergency, err := h.emergencyService.Update(c.Request.Context(), id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, emergency)
}
