package handlers

import (
	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

type RSUHandler struct {
	rsuService services.RSUService
}

func NewRSUHandler(rsuService services.RSUService) *RSUHandler {
	return &RSUHandler{
		rsuService: rsuService,
	}
}

// GetRSUs lists RSUs matching the body filter
func (h *RSUHandler) GetRSUs(c *gin.Context) {
	var filter models.RSUFilter
	if !bindJSON(c, &filter) {
		return
	}

	rsus, err := h.rsuService.List(c.Request.Context(), &filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(rsus), rsus)
}

func (h *RSUHandler) GetRSUNames(c *gin.Context) {
	names, err := h.rsuService.ListNames(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(names), names)
}

func (h *RSUHandler) GetRSU(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rsu, err := h.rsuService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, rsu)
}

func (h *RSUHandler) CreateRSU(c *gin.Context) {
	var request models.RSURequest
	if !bindJSON(c, &request) {
		return
	}

	rsu, err := h.rsuService.Create(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, rsu)
}

func (h *RSUHandler) UpdateRSU(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request models.RSURequest
	if !bindJSON(c, &request) {
		return
	}

	rsu, err := h.rsuService.Update(c.Request.Context(), id, &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, rsu)
}

func (h *RSUHandler) DeleteRSU(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.rsuService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.DeletedResponse(c)
}
