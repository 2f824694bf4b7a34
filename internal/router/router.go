package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tasktrack-dev/tasktrack/internal/config"
	"github.com/tasktrack-dev/tasktrack/internal/handlers"
	"github.com/tasktrack-dev/tasktrack/internal/middleware"
)

// Deps carries the wired handlers and the authentication middleware into the
// route table.
type Deps struct {
	Auth   *handlers.AuthHandler
	Tasks  *handlers.TaskHandler
	Users  *handlers.UserHandler
	Health *handlers.HealthHandler
	AuthMW gin.HandlerFunc
}

func New(cfg config.Config, deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", deps.Health.Health)
		api.GET("/ready", deps.Health.Ready)

		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.Auth.Register)
			auth.POST("/login", deps.Auth.Login)
			auth.POST("/logout", deps.Auth.Logout)
			auth.GET("/me", deps.AuthMW, deps.Auth.Me)
		}

		tasks := api.Group("/tasks", deps.AuthMW)
		{
			tasks.POST("", deps.Tasks.Create)
			tasks.GET("", deps.Tasks.List)
			tasks.GET("/:task_id", deps.Tasks.Get)
			tasks.PATCH("/:task_id", deps.Tasks.Update)
			tasks.DELETE("/:task_id", deps.Tasks.Delete)
		}

		users := api.Group("/users", deps.AuthMW)
		{
			users.GET("", deps.Users.List)
			users.GET("/:user_id", deps.Users.Get)
			users.PATCH("/:user_id", deps.Users.Update)
			users.DELETE("/:user_id", deps.Users.Delete)
		}
	}

	return r
}
