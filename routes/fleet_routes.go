package routes

import (
	handlers "fleetpulse/internal/handlers/shared"
	"fleetpulse/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	if authHandler == nil {
		return
	}
	r.POST("/auth/login", authHandler.Login)
}

// SetupEmergencyRoutes mounts emergency routes. Writes require a token when
// jwtSecret is set.
func SetupEmergencyRoutes(r *gin.RouterGroup, emergencyHandler *handlers.EmergencyHandler, jwtSecret string) {
	emergencies := r.Group("/emergencies")
	{
		emergencies.GET("", emergencyHandler.GetEmergencies)
		emergencies.POST("", middleware.AuthRequired(jwtSecret), emergencyHandler.CreateEmergency)
		emergencies.PUT("/:id", middleware.AuthRequired(jwtSecret), emergencyHandler.UpdateEmergency)
	}
}

func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler) {
	drivers := r.Group("/drivers")
	{
		// Filtered listing takes its filter in the body
		drivers.PUT("", driverHandler.GetDrivers)
		drivers.GET("/list", driverHandler.GetDriverNames)
		drivers.POST("", driverHandler.CreateDriver)
		drivers.GET("/:id", driverHandler.GetDriver)
		drivers.PUT("/:id", driverHandler.UpdateDriver)
		drivers.DELETE("/:id", driverHandler.DeleteDriver)
	}
}

func SetupCarRoutes(r *gin.RouterGroup, carHandler *handlers.CarHandler) {
	cars := r.Group("/cars")
	{
		cars.PUT("", carHandler.GetCars)
		cars.GET("/list", carHandler.GetCarNames)
		cars.POST("", carHandler.CreateCar)
		cars.GET("/:id", carHandler.GetCar)
		cars.PUT("/:id", carHandler.UpdateCar)
		cars.DELETE("/:id", carHandler.DeleteCar)
	}
}

func SetupRSURoutes(r *gin.RouterGroup, rsuHandler *handlers.RSUHandler) {
	rsus := r.Group("/rsus")
	{
		rsus.PUT("", rsuHandler.GetRSUs)
		rsus.GET("/list", rsuHandler.GetRSUNames)
		rsus.POST("", rsuHandler.CreateRSU)
		rsus.GET("/:id", rsuHandler.GetRSU)
		rsus.PUT("/:id", rsuHandler.UpdateRSU)
		rsus.DELETE("/:id", rsuHandler.DeleteRSU)
	}
}
