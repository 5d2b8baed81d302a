package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"triton-system/internal/auth"
	"triton-system/internal/server/handlers"
	"triton-system/internal/server/middleware"
)

// NewRouter wires the full REST surface. Register, login, token refresh,
// and health are public; everything else sits behind bearer-token auth.
func NewRouter(db *gorm.DB, tokens auth.TokenStore, rateLimit string) *gin.Engine {
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	if rateLimit != "" {
		r.Use(middleware.RateLimit(rateLimit))
	}

	authHandler := handlers.NewAuthHandler(db, tokens)
	userHandler := handlers.NewUserHandler(db)
	orgHandler := handlers.NewOrgHandler(db)
	roleHandler := handlers.NewRoleHandler(db)
	designationHandler := handlers.NewDesignationHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	// --- Public ---
	r.POST("/register/", authHandler.Register)
	r.POST("/login/", authHandler.Login)
	r.POST("/token/refresh/", authHandler.Refresh)

	// --- Protected ---
	protected := r.Group("/")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/logout/", authHandler.Logout)

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/total-users/", dashboardHandler.TotalUsers)
			dashboard.GET("/traffic-sources/", dashboardHandler.TrafficSources)
			dashboard.GET("/new-users/", dashboardHandler.NewUsers)
			dashboard.GET("/sales-distribution/", dashboardHandler.SalesDistribution)
			dashboard.GET("/project-progress/", dashboardHandler.ProjectProgress)
			dashboard.GET("/active-authors/", dashboardHandler.ActiveAuthors)
			dashboard.GET("/new-designations/", dashboardHandler.NewDesignations)
			dashboard.GET("/user-activity/", dashboardHandler.UserActivity)
		}

		users := protected.Group("/users")
		{
			users.GET("/", userHandler.ListUsers)
			users.POST("/", userHandler.CreateUser)
			users.GET("/:id/", userHandler.GetUser)
			users.PUT("/:id/", userHandler.UpdateUser)
			users.PATCH("/:id/", userHandler.UpdateUser)
			users.DELETE("/:id/", userHandler.DeleteUser)
		}

		companies := protected.Group("/companies")
		{
			companies.GET("/", orgHandler.ListCompanies)
			companies.POST("/", orgHandler.CreateCompany)
			companies.GET("/:id/", orgHandler.GetCompany)
			companies.PUT("/:id/", orgHandler.UpdateCompany)
			companies.PATCH("/:id/", orgHandler.UpdateCompany)
			companies.DELETE("/:id/", orgHandler.DeleteCompany)
		}

		locations := protected.Group("/locations")
		{
			locations.GET("/", orgHandler.ListLocations)
			locations.POST("/", orgHandler.CreateLocation)
			locations.GET("/:id/", orgHandler.GetLocation)
			locations.PUT("/:id/", orgHandler.UpdateLocation)
			locations.PATCH("/:id/", orgHandler.UpdateLocation)
			locations.DELETE("/:id/", orgHandler.DeleteLocation)
		}

		shops := protected.Group("/shops")
		{
			shops.GET("/", orgHandler.ListShops)
			shops.POST("/", orgHandler.CreateShop)
			shops.GET("/:id/", orgHandler.GetShop)
			shops.PUT("/:id/", orgHandler.UpdateShop)
			shops.PATCH("/:id/", orgHandler.UpdateShop)
			shops.DELETE("/:id/", orgHandler.DeleteShop)
		}

		roles := protected.Group("/roles")
		{
			roles.GET("/", roleHandler.ListRoles)
			roles.POST("/", roleHandler.CreateRole)
			roles.GET("/:id/", roleHandler.GetRole)
			roles.PUT("/:id/", roleHandler.UpdateRole)
			roles.PATCH("/:id/", roleHandler.UpdateRole)
			roles.DELETE("/:id/", roleHandler.DeleteRole)
		}

		designations := protected.Group("/designations")
		{
			designations.GET("/", designationHandler.ListDesignations)
			designations.POST("/", designationHandler.CreateDesignation)
			designations.GET("/:id/", designationHandler.GetDesignation)
			designations.PUT("/:id/", designationHandler.UpdateDesignation)
			designations.PATCH("/:id/", designationHandler.UpdateDesignation)
			designations.DELETE("/:id/", designationHandler.DeleteDesignation)
		}

		jewellery := protected.Group("/jewellery")
		{
			jewellery.GET("/", inventoryHandler.ListJewellery)
			jewellery.POST("/", inventoryHandler.CreateJewellery)
			jewellery.GET("/:id/", inventoryHandler.GetJewellery)
			jewellery.PUT("/:id/", inventoryHandler.UpdateJewellery)
			jewellery.PATCH("/:id/", inventoryHandler.UpdateJewellery)
			jewellery.DELETE("/:id/", inventoryHandler.DeleteJewellery)
		}

		rfid := protected.Group("/rfid")
		{
			rfid.GET("/", inventoryHandler.ListRFID)
			rfid.POST("/", inventoryHandler.CreateRFID)
			rfid.GET("/:id/", inventoryHandler.GetRFID)
			rfid.PUT("/:id/", inventoryHandler.UpdateRFID)
			rfid.PATCH("/:id/", inventoryHandler.UpdateRFID)
			rfid.DELETE("/:id/", inventoryHandler.DeleteRFID)
		}

		rfidMap := protected.Group("/rfid-map")
		{
			rfidMap.GET("/", inventoryHandler.ListMappings)
			rfidMap.POST("/", inventoryHandler.CreateMapping)
			rfidMap.DELETE("/:id/", inventoryHandler.DeleteMapping)
		}
	}

	return r
}
