// Package http wires the gin engine: auth middleware then the program
// routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"registrar/internal/interfaces/http/handlers"
	"registrar/internal/interfaces/http/middleware"
	"registrar/internal/shared/logger"
)

type Router struct {
	engine         *gin.Engine
	programHandler *handlers.ProgramHandler
	authMiddleware *middleware.AuthMiddleware
	logger         logger.Interface
}

func NewRouter(
	programHandler *handlers.ProgramHandler,
	authMiddleware *middleware.AuthMiddleware,
	log logger.Interface,
) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))

	return &Router{
		engine:         engine,
		programHandler: programHandler,
		authMiddleware: authMiddleware,
		logger:         log,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.RequireAuth())
	{
		v1.GET("/programs/:uuid", r.programHandler.GetProgram)
		v1.GET("/programs/:uuid/permissions", r.programHandler.GetPermissions)
		v1.GET("/programs/:uuid/courses/:course_id", r.programHandler.GetCourseRun)
		v1.DELETE("/programs/:uuid/cache", r.programHandler.InvalidateCache)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
