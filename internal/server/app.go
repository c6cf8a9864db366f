// Package server initializes and runs the users HTTP API. It opens the
// database, applies migrations, wires services and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/httpserver"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userauth/internal/server/services"
	"github.com/dmitrijs2005/userauth/internal/server/session"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
	"golang.org/x/crypto/bcrypt"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpserver.HTTPServer
}

// dbBackoff controls how long startup waits for PostgreSQL to accept connections.
var dbBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	gin.SetMode(c.GinMode)

	codec, err := auth.NewTokenCodec(c.SecretKey, c.Algorithm)
	if err != nil {
		return nil, err
	}

	db, rm, err := OpenStore(ctx, c.DatabaseDSN, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(codec, c.AccessTokenValidityDuration, c.CookieSecure)
	us := services.NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.DefaultCost), sessions, logger.With("module", "user_service"))
	srv := httpserver.NewHTTPServer(c, logger, us, sessions)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// OpenStore opens the PostgreSQL pool, waits until it answers and applies
// pending migrations.
func OpenStore(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := waitForDB(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, rm, nil
}

// waitForDB pings db with exponential backoff until it answers.
func waitForDB(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	return retry.Do(ctx, dbBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			logger.Warn(ctx, "database not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
