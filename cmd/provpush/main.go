package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"provpush/internal/application/config"
	"provpush/internal/application/server"
	"provpush/internal/application/version"
	log "provpush/pkg/log"
)

func main() {
	// Parse command line flags
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	envFile := flag.String("env-file", ".env", "Path to the .env file")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if *showHelp {
		fmt.Println("Provisioning push form")
		fmt.Println("Usage: provpush [options]")
		fmt.Println("Options:")
		fmt.Println("  --version   Show version information")
		fmt.Println("  --help      Show help information")
		fmt.Println("  --env-file  Path to the .env file (default: .env)")
		fmt.Println("Configuration is read from the environment; see .env.example.")
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := log.InitLog(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialise logging: %v", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting provpush", "version", version.GetVersion(), "listen", cfg.GetListenAddress())
	s, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	if err := s.Run(ctx); err != nil {
		log.Error("Server stopped with error", "error", err)
		stop()
		_ = log.Close()
		os.Exit(1)
	}
}
