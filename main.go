package main

import (
	"github.com/BennettDISH/admiral-undersea/config"
	"github.com/BennettDISH/admiral-undersea/logger"
	"github.com/BennettDISH/admiral-undersea/monitor"
	"github.com/BennettDISH/admiral-undersea/persistence"
	"github.com/BennettDISH/admiral-undersea/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database (lobby rows only; gameplay state is in-memory)
	db, err := openDatabase(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Log.Info("Database connection successful.")

	// Metrics endpoint
	mon := monitor.NewMonitor("admiral")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize game server
	gameServer := server.NewGameServer(cfg, db, mon)

	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func openDatabase(cfg *config.Config) (persistence.Database, error) {
	pg := cfg.Database.Postgres
	if cfg.Database.Driver == "postgres" {
		return persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	}
	return persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
}
