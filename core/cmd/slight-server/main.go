package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	slight "github.com/rphilander/slight/core"
)

func main() {
	cfg, err := slight.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	core, err := slight.NewCore(cfg)
	if err != nil {
		log.Fatalf("failed to start core: %v", err)
	}

	// Handle shutdown signals
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Println("shutting down...")
		core.Shutdown()
		os.Exit(0)
	}()

	history := cfg.HistoryDB
	if history == "" {
		history = "disabled"
	}
	log.Printf("slight core listening (socket: %s, history: %s, max depth: %d)", cfg.Socket, history, cfg.MaxDepth)
	core.Run()
}
