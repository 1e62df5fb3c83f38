package routes

import (
	"time"

	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// submit/create endpoints share one per-IP limiter
var writeLimiter = middlewares.NewIPRateLimiter(30, 10, 5*time.Minute)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	rideRepo := repository.NewRideRepository(db)
	reqRepo := repository.NewRideRequestRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	rideSvc := services.NewRideService(rideRepo)
	notifSvc := services.NewNotificationService(notifRepo)
	reqSvc := services.NewRideRequestService(db, reqRepo, rideRepo, userRepo, notifSvc)
	chatSvc := services.NewChatService(chatRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, int(cfg.JWTTTL.Seconds()))
	userCtrl := controllers.NewUserController(authSvc)
	rideCtrl := controllers.NewRideController(rideSvc)
	reqCtrl := controllers.NewRideRequestController(reqSvc)
	notifCtrl := controllers.NewNotificationController(notifSvc)
	chatCtrl := controllers.NewChatController(chatSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	limited := middlewares.RateLimitByIP(writeLimiter)

	api := r.Group("/api")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authCtrl.Logout)
		a.GET("/me", auth, authCtrl.Me)
	}

	// User directory
	api.GET("/users/:userId", auth, userCtrl.Get)

	// Rides
	rides := api.Group("/rides", auth)
	{
		rides.POST("", rideCtrl.Create)
		rides.GET("", rideCtrl.List)
		rides.GET("/:rideId", rideCtrl.Detail)
	}

	// Join-request lifecycle
	rr := api.Group("/ride-requests", auth)
	{
		rr.POST("/:rideId/request", limited, reqCtrl.Send)
		rr.GET("/:rideId/request-status", reqCtrl.Status)
		rr.GET("/:rideId/requests", reqCtrl.List)
		rr.PUT("/:rideId/requests/:requestId/accept", reqCtrl.Accept)
		rr.PUT("/:rideId/requests/:requestId/reject", reqCtrl.Reject)
	}

	// Notifications
	n := api.Group("/notifications", auth)
	{
		n.GET("", notifCtrl.List)
		n.PUT("/read-all", notifCtrl.MarkAllRead)
		n.PUT("/:notificationId/read", notifCtrl.MarkRead)
		n.DELETE("/:notificationId", notifCtrl.Delete)
	}

	// Chats
	chats := api.Group("/chats", auth)
	{
		chats.GET("/user/:userId", chatCtrl.ListForUser)
		chats.GET("/:chatId", chatCtrl.Get)
		chats.POST("", limited, chatCtrl.Create)
	}

	// Realtime channel: one connection per session
	hub := ws.NewChatHub(chatSvc)
	go hub.Run()
	r.GET("/ws", auth, hub.HandleWebSocket)
}
