package main

import (
	"context"
	"log"

	"portfolio-terminal/internal/bootstrap"
	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/server"
	"portfolio-terminal/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	if container.NatsPublisher != nil {
		defer container.NatsPublisher.Close()
	}

	// 4. Start Background Services
	// The activity consumer feeds the usage counters and the dashboard feed.
	if err := container.ActivityService.Consume(context.Background()); err != nil {
		log.Printf("Background Activity Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
