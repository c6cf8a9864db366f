package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/userauth/internal/admin"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/services"
	"golang.org/x/crypto/bcrypt"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewJSONLogger(os.Stderr, slog.LevelWarn)

	db, rm, err := server.OpenStore(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer db.Close()

	us := services.NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.DefaultCost), nil, logger)

	if err := admin.NewApp(us, os.Stdout).Execute(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, admin.ErrUsage) {
			log.Printf("%v", err)
		}
		db.Close()
		os.Exit(1)
	}

}
