package main

import (
	"context"
	"log"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/bootstrap"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/config"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/server"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/tracer"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Seed the root admin account
	if err := container.AuthService.EnsureRootAdmin(context.Background(), cfg.Auth.RootAdminEmail, cfg.Auth.RootAdminPassword); err != nil {
		log.Panicf("Unable to ensure root admin account: %v", err)
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
