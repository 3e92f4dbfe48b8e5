package routes

import (
	"net/http"
	"time"

	"slotwise/config"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Store {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm slotwise"})
	})
}

// RegisterPublicRoutes registers the customer-facing booking link endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/availability/:employeeID", hb.DayAvailabilityHandler)
		api.GET("/slots", hb.SlotsHandler)

		// Any authenticated caller, guests included, can book for themselves.
		api.POST("/public/bookings",
			middleware.JWTAuthMiddleware(hb.JWTSecret),
			middleware.RequireRole(utils.RoleAdmin, utils.RoleEmployee, utils.RoleGuest),
			hb.CreatePublicBookingHandler)
	}
}

// RegisterBookingRoutes registers the internal calendar endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		bookingGroup.GET("/:id", middleware.RequireRole(utils.RoleAdmin, utils.RoleEmployee), hb.GetBookingHandler)

		admin := bookingGroup.Group("")
		admin.Use(middleware.RequireRole(utils.RoleAdmin))
		admin.POST("", hb.CreateBookingHandler)
		admin.PATCH("/:id", hb.UpdateBookingHandler)
		admin.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterCatalogRoutes registers services and employees. Reads are public.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.JWTAuthMiddleware(hb.JWTSecret)
	adminOnly := middleware.RequireRole(utils.RoleAdmin)
	staff := middleware.RequireRole(utils.RoleAdmin, utils.RoleEmployee)

	services := r.Group("/api/services")
	{
		services.GET("", hb.ListServicesHandler)
		services.GET("/:id", hb.GetServiceHandler)
		services.POST("", auth, adminOnly, hb.CreateServiceHandler)
		services.PUT("/:id", auth, adminOnly, hb.UpdateServiceHandler)
	}

	employees := r.Group("/api/employees")
	{
		employees.GET("", hb.ListEmployeesHandler)
		employees.GET("/:id", hb.GetEmployeeHandler)
		employees.GET("/:id/bookings", auth, staff, hb.ListEmployeeBookingsHandler)
		employees.POST("", auth, adminOnly, hb.CreateEmployeeHandler)
		employees.PUT("/:id", auth, adminOnly, hb.UpdateEmployeeHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
}
