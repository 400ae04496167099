package handlers

import (
	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	driverService services.DriverService
}

func NewDriverHandler(driverService services.DriverService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// GetDrivers lists drivers matching the filter in the request body
func (h *DriverHandler) GetDrivers(c *gin.Context) {
	var filter models.DriverFilter
	if !bindJSON(c, &filter) {
		return
	}

	drivers, err := h.driverService.List(c.Request.Context(), &filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(drivers), drivers)
}

// GetDriverNames lists {id, name} for every driver
func (h *DriverHandler) GetDriverNames(c *gin.Context) {
	names, err := h.driverService.ListNames(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(names), names)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	driver, err := h.driverService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, driver)
}

func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var request models.DriverRequest
	if !bindJSON(c, &request) {
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, driver)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request models.DriverRequest
	if !bindJSON(c, &request) {
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), id, &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, driver)
}

// DeleteDriver removes the driver, its user and its car assignments
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.DeletedResponse(c)
}
