package internal

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studio-portfolio/pkg/config"
	"studio-portfolio/pkg/jwt"
	"studio-portfolio/pkg/logger"
	"studio-portfolio/pkg/middleware"
	studioHTTP "studio-portfolio/services/studio/internal/controller/http"
	"studio-portfolio/services/studio/internal/entity"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "studio-portfolio/services/studio/docs" // Swagger docs
)

const contactLimitPerHour = 5

type routeHandlers struct {
	auth    *studioHTTP.AuthHandler
	users   *studioHTTP.UserHandler
	photos  *studioHTTP.MediaHandler
	videos  *studioHTTP.MediaHandler
	contact *studioHTTP.ContactHandler

	accounts middleware.AccountLookup
}

func newRouter(cfg *config.Config, log *logger.Logger, jwtService *jwt.Service, redisClient *redis.Client, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.AuthMiddleware(jwtService, h.accounts)
	adminOnly := middleware.RequireRoles(string(entity.RoleAdmin))
	uploaders := middleware.RequireRoles(string(entity.RoleAdmin), string(entity.RolePhotographer))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService, h.accounts))
	api.Use(middleware.RateLimitMiddleware(redisClient, "api", cfg.RateLimitPerMinute, time.Minute))

	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.auth.Register)
		authGroup.POST("/login", h.auth.Login)
		authGroup.GET("/me", auth, h.auth.Me)
		authGroup.PUT("/me", auth, h.auth.UpdateMe)
		authGroup.PUT("/password", auth, h.auth.ChangePassword)
		authGroup.POST("/avatar", auth, h.auth.UploadAvatar)
	}

	{
		users := api.Group("/users", auth, adminOnly)
		users.GET("", h.users.ListUsers)
		users.GET("/:id", h.users.GetUser)
		users.PUT("/:id/role", h.users.UpdateRole)
		users.PUT("/:id/status", h.users.UpdateStatus)
		users.DELETE("/:id", h.users.DeleteUser)
	}

	for prefix, mh := range map[string]*studioHTTP.MediaHandler{"/photos": h.photos, "/videos": h.videos} {
		g := api.Group(prefix)
		g.GET("", mh.List)
		g.GET("/featured", mh.Featured)
		g.GET("/categories", mh.Categories)
		g.GET("/liked", auth, mh.ListLiked)
		g.GET("/user/:user_id", mh.ListByUser)
		g.GET("/:id", mh.Get)
		g.POST("", auth, uploaders, mh.Upload)
		g.PUT("/:id", auth, mh.Update)
		g.DELETE("/:id", auth, adminOnly, mh.Delete)
		g.POST("/:id/like", auth, mh.ToggleLike)
		g.POST("/:id/comments", auth, mh.AddComment)
		g.DELETE("/:id/comments/:comment_id", auth, mh.DeleteComment)
	}

	{
		contact := api.Group("/contact")
		contact.POST("", middleware.RateLimitMiddleware(redisClient, "contact", contactLimitPerHour, time.Hour), h.contact.Submit)
		contact.GET("", auth, adminOnly, h.contact.List)
		contact.PUT("/:id/handled", auth, adminOnly, h.contact.MarkHandled)
	}

	r.NoRoute(staticFallback(cfg.StaticDir))
	return r
}

// staticFallback serves the portfolio bundle from dir. Paths that are not
// files get index.html so client-side routing works. API and docs paths
// always get a JSON 404.
func staticFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/swagger/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		candidate := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
		c.File(index)
	}
}
