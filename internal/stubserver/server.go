// Package stubserver is an in-repo implementation of the listing API the
// client talks to. The production backend is an external system; this one
// exists so the client can be developed and integration-tested against a
// server with the same routes, shapes and failure modes.
package stubserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// propertiesPerPage is the backend's fixed page size for the list endpoint.
const propertiesPerPage = 6

// Server is the stub listing backend.
type Server struct {
	db        *gorm.DB
	logger    *logrus.Logger
	jwtSecret string
	tokenTTL  time.Duration
	router    *gin.Engine
}

// Options configures a Server.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewServer creates the stub backend on the given database.
func NewServer(db *gorm.DB, logger *logrus.Logger, opts Options) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 30 * 24 * time.Hour
	}

	s := &Server{
		db:        db,
		logger:    logger,
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the HTTP handler, for mounting or for httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", s.registerUser)
			users.POST("/login", s.loginUser)
			users.GET("/agents", s.listAgents)
			users.PUT("/profile", s.requireAuth(), s.updateProfile)
			users.POST("/favorites", s.requireAuth(), s.addFavorite)
			users.DELETE("/favorites/:id", s.requireAuth(), s.removeFavorite)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", s.listProperties)
			properties.GET("/featured", s.listFeatured)
			properties.GET("/nearby", s.listNearby)
			properties.GET("/user", s.requireAuth(), s.listUserProperties)
			properties.GET("/:id", s.getProperty)
			properties.POST("", s.requireAuth(), s.createProperty)
			properties.PUT("/:id", s.requireAuth(), s.updateProperty)
			properties.DELETE("/:id", s.requireAuth(), s.deleteProperty)
		}
	}

	return router
}
