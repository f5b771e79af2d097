package main

import (
	"fmt"
	"log"
	"net/http"

	"sugoroku/backend/internal/auth"
	"sugoroku/backend/internal/config"
	"sugoroku/backend/internal/database"
	"sugoroku/backend/internal/handler"
	"sugoroku/backend/internal/hub"
	"sugoroku/backend/internal/models"
	"sugoroku/backend/internal/sugoroku"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "sugoroku/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Sugoroku API
// @version         1.0
// @description     Multiplayer sugoroku room and game session API.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	if err := database.Seed(database.DB, config.AppConfig.VirusNickname); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	var virus models.User
	if err := database.DB.Where("is_virus = ?", true).First(&virus).Error; err != nil {
		log.Fatalf("Virus user missing after seed: %v", err)
	}

	handler.Engine = sugoroku.NewEngine(
		database.DB,
		config.AppConfig.MaxActiveRooms,
		virus.ID,
		sugoroku.WithNotifier(hub.GlobalHub),
	)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
		}

		// Room and game routes. Browsing open rooms works with or without
		// a token; everything that touches a specific room requires one.
		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.GET("", auth.OptionalAuthMiddleware(), handler.ListRooms)
		roomRoutes.Use(auth.AuthMiddleware())
		{
			roomRoutes.POST("", handler.CreateRoom)
			roomRoutes.GET("/:uname", handler.GetRoom)
			roomRoutes.POST("/:uname/join", handler.JoinRoom)
			roomRoutes.POST("/:uname/leave", handler.LeaveRoom)
			roomRoutes.POST("/:uname/start", handler.StartGame)
			roomRoutes.POST("/:uname/actions", handler.ResolveAction)
			roomRoutes.GET("/:uname/positions/:userID", handler.GetPosition)
			roomRoutes.GET("/:uname/events", handler.StreamEvents)
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(router.Run(addr))
}
