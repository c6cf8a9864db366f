// Package httpserver exposes the user and session operations over HTTP using gin.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is the business API the handlers call into.
type UserService interface {
	Register(ctx context.Context, w http.ResponseWriter, username, password string) (*models.User, error)
	Login(ctx context.Context, w http.ResponseWriter, username, password string) (*models.User, error)
	Logout(w http.ResponseWriter)
	CurrentUser(ctx context.Context, r *http.Request) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, p models.PageParams) (models.Page[models.User], error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// SessionValidator reads and checks the session token of a request.
type SessionValidator interface {
	Extract(r *http.Request) (string, bool)
	Validate(token string) (*auth.TokenClaims, error)
}

type HTTPServer struct {
	address string
	users   UserService
	logger  logging.Logger
	engine  *gin.Engine
	public  PublicPathSet
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us UserService, sv SessionValidator) *HTTPServer {
	s := &HTTPServer{
		address: cfg.EndpointAddrHTTP,
		users:   us,
		logger:  l.With("module", "http_server"),
	}

	rs := s.routes()
	s.public = NewPublicPathSet(cfg.PublicPaths, rs)

	engine := gin.New()
	engine.Use(requestID(), requestLogger(s.logger), recovery(s.logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}
	engine.Use(AccessGate(s.public, sv, s.logger))

	for _, r := range rs {
		engine.Handle(r.method, r.path, r.handler)
	}
	engine.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "Not Found")
	})

	s.engine = engine
	return s
}

// Handler returns the configured gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = origins
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	return c
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
