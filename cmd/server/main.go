package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/service"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize services
	gameManager := service.NewGameManager(cfg.ClockTime, cfg.MaxGames)
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(cfg, gameService)

	go func() {
		log.Printf("Chess server listening on %s", cfg.Addr())
		if cfg.ClockTime > 0 {
			log.Printf("Clock: %s per side", cfg.ClockTime)
		} else {
			log.Printf("Clock: disabled")
		}
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Printf("Server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	gameManager.Shutdown()
	log.Println("Server exited")
}
