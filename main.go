package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/controllers"
	"github.com/abhiraj-restaurant/restaurant-api/middleware"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/services"
)

func main() {
	log.Println("Starting Restaurant API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	config.SetConfig(cfg)

	if cfg.LogLevel == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	notifier, err := services.NewNotifier(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize notifier: %v", err)
	}
	services.SetNotifier(notifier)
	if closer, ok := notifier.(io.Closer); ok {
		defer closer.Close()
	}

	if cfg.HasImageStorage() {
		s3Service, err := services.InitS3Service(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Println("S3 image storage initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, menu image uploads are disabled")
	}

	if cfg.SeedDatabase {
		result, err := services.SeedDatabase(context.Background(), db)
		if err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Printf("Seeded %d users and %d menu items", result.UsersCreated, result.MenuItemsCreated)
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires every route of the API
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig(cfg)))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		v1.GET("/menu", controllers.GetMenu)

		// Guests may book; a valid token links the booking to the account
		v1.POST("/bookings", middleware.OptionalToken(cfg), middleware.LoadOptionalPrincipal(), controllers.CreateBooking)

		customer := v1.Group("")
		customer.Use(middleware.EnsureValidToken(cfg), middleware.LoadPrincipal())
		{
			customer.GET("/users/me", controllers.GetMyProfile)

			customer.GET("/bookings/user", controllers.GetMyBookings)
			customer.GET("/bookings/:id/qrcode", controllers.GetBookingQRCode)

			customer.POST("/orders", controllers.CreateOrder)
			customer.GET("/orders/user", controllers.GetMyOrders)
			customer.GET("/orders/:id", controllers.GetOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.LoadPrincipal(), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/bookings", controllers.ListBookings)
			admin.POST("/bookings", controllers.AdminCreateBooking)
			admin.GET("/bookings/:id", controllers.GetBooking)
			admin.PUT("/bookings/:id", controllers.UpdateBookingStatus)
			admin.DELETE("/bookings/:id", controllers.DeleteBooking)

			admin.GET("/menu", controllers.AdminListMenu)
			admin.POST("/menu", controllers.CreateMenuItem)
			admin.GET("/menu/:id", controllers.GetMenuItem)
			admin.PUT("/menu/:id", controllers.UpdateMenuItem)
			admin.DELETE("/menu/:id", controllers.DeleteMenuItem)
			admin.POST("/menu/:id/image", controllers.UploadMenuItemImage)

			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/:id", controllers.AdminGetOrder)
			admin.PUT("/orders/:id", controllers.UpdateOrder)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)
		}

		if !cfg.IsProduction() {
			v1.POST("/seed", middleware.EnsureValidToken(cfg), middleware.RequireScope("seed:database"), controllers.SeedDatabase)
		}
	}

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowCredentials = true
	return corsCfg
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database is not connected",
			},
		})
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
