package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	routes "github.com/sipcircle/sipcircle/internal/api"
	"github.com/sipcircle/sipcircle/internal/config"
	"github.com/sipcircle/sipcircle/internal/db"
	"github.com/sipcircle/sipcircle/internal/models"
	"github.com/sipcircle/sipcircle/pkg/logger"
	"github.com/sipcircle/sipcircle/pkg/utils"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	log, err := logger.NewLogger()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Close()

	redisClient, err := db.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize Redis")
		panic(err)
	}
	defer redisClient.Close(log)

	gormDB, err := db.NewDB(
		ctx,
		cfg.DSN(),
		models.RegisterModels(),
		db.WithLogger(log),
	)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize PostgreSQL database")
		panic("DB init failed")
	}
	defer db.CloseDB(log)

	app := fiber.New()
	routes.NewRoutes(app, cfg, gormDB, log, redisClient)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		cancel()
		app.Shutdown()
	}()

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Server stopped")
	}
}
