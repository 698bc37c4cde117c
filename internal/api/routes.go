package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KAMEVETRICS/gensyn-portal/internal/api/handlers"
	"github.com/KAMEVETRICS/gensyn-portal/internal/api/middleware"
	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
)

// SetupRoutes configures all application routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.Authenticate())

	router.GET("/health", handlers.HealthCheck)

	// Local backend serves its uploads directly; the remote backend hands
	// out absolute URLs instead.
	if strings.ToLower(cfg.Storage.Provider) == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
	}

	artists := router.Group("/artists")
	{
		artists.GET("", handlers.ListArtists)
		artists.GET("/:id", handlers.GetArtist)
	}

	artworks := router.Group("/artworks")
	{
		artworks.GET("", handlers.ListArtworks)
		artworks.GET("/my-artworks", middleware.RequireAuth(), handlers.MyArtworks)
		artworks.GET("/:id", handlers.GetArtwork)

		artworks.POST("", middleware.RequireAuth(), handlers.CreateArtwork)
		artworks.POST("/batch", middleware.RequireAuth(), handlers.BatchArtworks)
		artworks.PUT("/:id", middleware.RequireAuth(), handlers.UpdateArtwork)
		artworks.DELETE("/:id", middleware.RequireAuth(), handlers.DeleteArtwork)
	}

	folders := router.Group("/folders")
	{
		folders.GET("", handlers.ListFolders)
		folders.GET("/:id", handlers.GetFolder)

		folders.POST("", middleware.RequireAuth(), handlers.CreateFolder)
		folders.PUT("/:id", middleware.RequireAuth(), handlers.UpdateFolder)
		folders.DELETE("/:id", middleware.RequireAuth(), handlers.DeleteFolder)
	}

	upload := router.Group("/upload")
	upload.Use(middleware.RequireAuth())
	{
		upload.POST("", handlers.UploadImage)
		upload.POST("/avatar", handlers.UploadAvatar)
	}

	user := router.Group("/user")
	user.Use(middleware.RequireAuth())
	{
		user.GET("/me", handlers.Me)
	}

	export := router.Group("/export")
	export.Use(middleware.RequireAuth())
	{
		export.GET("/csv", handlers.ExportCSV)
		export.GET("/json", handlers.ExportJSON)
	}

	// The moderation surface answers 403 to any non-admin caller, so these
	// routes guard themselves instead of using RequireAuth.
	admin := router.Group("/admin")
	{
		admin.GET("/check", handlers.AdminCheck)
		admin.GET("/users", handlers.AdminListUsers)
		admin.PUT("/users/:id", handlers.AdminUpdateUser)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.GET("/artworks", handlers.AdminListArtworks)
		admin.DELETE("/artworks/:id", handlers.AdminDeleteArtwork)
	}
}
