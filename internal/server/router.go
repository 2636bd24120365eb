package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/handlers"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/validation"
	"go.uber.org/zap"
)

// Deps are the services the router exposes.
type Deps struct {
	Users         *services.UserService
	Projects      *services.ProjectService
	Tasks         *services.TaskService
	Auth          *services.AuthService
	Authenticator services.Authenticator
}

// NewRouter builds the gin engine. GET /health is always public. In token
// mode POST /users/create and POST /auth/login are public too, so that a
// caller can register and obtain a token. Every other route sits behind
// the configured authenticator.
func NewRouter(cfg *config.Config, deps Deps, log *zap.Logger) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.Recovery(log))

	userHandler := handlers.NewUserHandler(deps.Users)
	projectHandler := handlers.NewProjectHandler(deps.Projects)
	taskHandler := handlers.NewTaskHandler(deps.Tasks)
	authHandler := handlers.NewAuthHandler(deps.Auth)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	header := cfg.APIKeyHeader
	if cfg.AuthMode == config.AuthModeJWT {
		header = cfg.TokenHeader
	}
	requireAuth := middleware.RequireAuth(deps.Authenticator, header, log)

	// Public routes
	if cfg.AuthMode == config.AuthModeJWT {
		r.POST("/users/create", userHandler.CreateUser)
		r.POST("/auth/login", authHandler.Login)
	}

	auth := r.Group("/auth", requireAuth)
	{
		auth.GET("/me", authHandler.GetCurrentIdentity)
	}

	users := r.Group("/users", requireAuth)
	{
		if cfg.AuthMode != config.AuthModeJWT {
			users.POST("/create", userHandler.CreateUser)
		}
		users.GET("/email/:email", userHandler.GetUserByEmail)
		users.GET("/:id", userHandler.GetUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	projects := r.Group("/projects", requireAuth)
	{
		projects.GET("/name/:name", projectHandler.GetProjectsByName)
		projects.POST("/create", projectHandler.CreateProject)
		projects.PATCH("/user/add", projectHandler.AddUser)
		projects.PATCH("/user/remove", projectHandler.RemoveUser)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PATCH("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
	}

	tasks := r.Group("/tasks", requireAuth)
	{
		tasks.POST("/create", taskHandler.CreateTask)
		tasks.GET("/user/:userId", taskHandler.ListUserTasks)
		tasks.GET("/user/:userId/count", taskHandler.CountUserTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PATCH("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	return r, nil
}
