package handlers

import (
	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// GetCars filters cars by id, name and driver name. Filters come in the
// request body, which is why the route is a PUT.
func (h *CarHandler) GetCars(c *gin.Context) {
	var filter models.CarFilter
	if !bindJSON(c, &filter) {
		return
	}

	cars, err := h.carService.List(c.Request.Context(), &filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(cars), cars)
}

// GetCarNames lists {id, name} for every Car
func (h *CarHandler) GetCarNames(c *gin.Context) {
	names, err := h.carService.ListNames(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.ListResponse(c, len(names), names)
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	car, err := h.carService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, car)
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var request models.CarRequest
	if !bindJSON(c, &request) {
		return
	}

	car, err := h.carService.Create(c.Request.Context(), &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, car)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request models.CarRequest
	if !bindJSON(c, &request) {
		return
	}

	car, err := h.carService.Update(c.Request.Context(), id, &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.carService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.DeletedResponse(c)
}
