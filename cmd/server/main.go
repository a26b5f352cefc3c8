package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/config"
	"github.com/r4mxae/project-hub/internal/database"
	"github.com/r4mxae/project-hub/internal/server"
	"github.com/r4mxae/project-hub/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if cfg.SeedDemo {
		if err := database.SeedDemo(db); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
	}

	r := server.NewRouter(cfg, store.New(db), logger)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
