package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"kudichain.backend/internal/interfaces/http/handlers"
	"kudichain.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	dropHandler    *handlers.DropHandler
	walletHandler  *handlers.WalletHandler
	rateHandler    *handlers.RateHandler
	taskHandler    *handlers.TaskHandler
	profileHandler *handlers.ProfileHandler
	supportHandler *handlers.SupportHandler
	blogHandler    *handlers.BlogHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, X-Session-Id, Idempotency-Key")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "kudichain-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
			auth.POST("/kyc", d.authMiddleware, d.authHandler.SubmitKYC)
		}

		// Drop lifecycle routes (protected)
		drops := v1.Group("/drops")
		drops.Use(d.authMiddleware)
		{
			drops.POST("", middleware.IdempotencyMiddleware(), d.dropHandler.Create)
			drops.GET("", d.dropHandler.List)
			drops.GET("/:id", d.dropHandler.Get)
			drops.POST("/:id/confirm", d.dropHandler.Confirm)
			drops.POST("/:id/ship", d.dropHandler.Ship)
			drops.POST("/:id/receive", d.dropHandler.Receive)
			drops.POST("/:id/release-payout", middleware.IdempotencyMiddleware(), d.dropHandler.ReleasePayout)
			drops.POST("/:id/cancel", d.dropHandler.Cancel)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("", d.walletHandler.GetBalance)
			wallet.GET("/transactions", d.walletHandler.ListTransactions)
			wallet.POST("/redeem", middleware.IdempotencyMiddleware(), d.walletHandler.Redeem)
		}

		// Rate routes (public read)
		rates := v1.Group("/rates")
		{
			rates.GET("", d.rateHandler.List)
			rates.GET("/:trashType", d.rateHandler.GetActive)
		}

		// Task routes (protected)
		tasks := v1.Group("/tasks")
		tasks.Use(d.authMiddleware)
		{
			tasks.POST("", d.taskHandler.Create)
			tasks.GET("", d.taskHandler.List)
			tasks.GET("/available", d.taskHandler.ListAvailable)
			tasks.POST("/:id/accept", d.taskHandler.Accept)
			tasks.POST("/:id/start", d.taskHandler.Start)
			tasks.POST("/:id/complete", d.taskHandler.Complete)
			tasks.POST("/:id/verify", d.taskHandler.Verify)
			tasks.POST("/:id/cancel", d.taskHandler.Cancel)
		}

		// Vendor routes
		vendors := v1.Group("/vendors")
		vendors.Use(d.authMiddleware)
		{
			vendors.GET("", d.profileHandler.ListVendorProfiles)
			vendors.GET("/profile", d.profileHandler.GetMyVendorProfile)
			vendors.PUT("/profile", d.profileHandler.UpsertVendorProfile)
		}

		// Factory routes
		factories := v1.Group("/factories")
		{
			factories.GET("", d.profileHandler.ListFactories)
			factories.POST("", d.authMiddleware, d.profileHandler.RegisterFactory)
			factories.GET("/mine", d.authMiddleware, d.profileHandler.GetMyFactory)
		}

		// Support routes (protected)
		support := v1.Group("/support")
		support.Use(d.authMiddleware)
		{
			support.POST("/tickets", d.supportHandler.CreateTicket)
			support.GET("/tickets", d.supportHandler.ListMyTickets)
			support.GET("/tickets/:id", d.supportHandler.GetTicket)
		}

		// Blog routes (public read)
		blog := v1.Group("/blog")
		{
			blog.GET("", d.blogHandler.List)
			blog.GET("/:slug", d.blogHandler.Get)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.GetStats)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/users/:id", d.adminHandler.GetUser)
			admin.DELETE("/users/:id", d.adminHandler.RemoveUser)
			admin.GET("/audit", d.adminHandler.ListAuditLog)

			admin.POST("/kyc/:userId/review", d.authHandler.ReviewKYC)

			admin.PUT("/rates", d.rateHandler.Upsert)
			admin.DELETE("/rates/:trashType", d.rateHandler.Deactivate)

			admin.POST("/wallet/adjust", middleware.IdempotencyMiddleware(), d.walletHandler.Adjust)
			admin.GET("/wallet/:userId/verify", d.walletHandler.VerifyBalance)

			admin.POST("/vendors/:userId/verify", d.profileHandler.VerifyVendor)
			admin.POST("/factories/:id/verify", d.profileHandler.VerifyFactory)

			admin.GET("/support/tickets", d.supportHandler.ListTickets)
			admin.POST("/support/tickets/:id/reply", d.supportHandler.Reply)

			admin.PUT("/blog", d.blogHandler.Upsert)
			admin.DELETE("/blog/:id", d.blogHandler.Delete)
		}
	}
}
