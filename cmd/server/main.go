package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"orbitsim/internal/api"
	"orbitsim/internal/config"
	"orbitsim/internal/matchrun"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment variables only")
		}
	} else {
		log.Println("loaded environment from ../.env")
	}

	log.Println("================================")
	log.Println("  ORBITSIM MATCH SERVER")
	log.Println("================================")

	appConfig := config.Load()

	log.Printf("sim: %d ticks/sec, world %0.f units, max %d ticks/match",
		appConfig.Sim.TickRate, appConfig.Sim.WorldSize, appConfig.Sim.MaxTicks)
	log.Printf("limits: %dms agent budget, %d max concurrent matches",
		appConfig.Limits.AgentBudgetMillis, appConfig.Server.MaxConcurrentMatches)

	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("debug server disabled: %v", err)
		}
	}

	jobs := matchrun.NewManager(appConfig.Server.MaxConcurrentMatches, appConfig.Snapshot.CadenceTicks)
	server := api.NewServer(jobs)

	addr := ":" + strconv.Itoa(appConfig.Server.Port)
	go func() {
		log.Printf("API server on http://localhost%s", addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("server ready, press Ctrl+C to stop")
	<-quit

	log.Println("shutting down...")
	server.Stop()
	log.Println("goodbye")
}
