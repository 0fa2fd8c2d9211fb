package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mission-board/internal/board"
	"mission-board/internal/bot"
	"mission-board/internal/i18n"
	"mission-board/internal/store"
	"mission-board/internal/web"
)

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "mission-board.db"
	}

	// Get session secret from environment or use default (change in production!)
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret-change-in-production"
		log.Println("Warning: Using default session secret. Set SESSION_SECRET environment variable in production!")
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Get Telegram bot token from environment
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")

	// Initialize the database store
	log.Println("Initializing database...")
	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Load the mission catalog
	catalog := board.DefaultCatalog()
	if path := os.Getenv("CATALOG_PATH"); path != "" {
		catalog, err = board.LoadCatalog(path)
		if err != nil {
			log.Fatalf("Failed to load catalog from %s: %v", path, err)
		}
		log.Printf("Loaded mission catalog from %s", path)
	}

	translator, err := i18n.NewTranslator("locales", "en")
	if err != nil {
		log.Printf("Failed to load locales: %v", err)
		translator = i18n.NewFallback("en")
	}

	// Initialize the Telegram bot if a token is provided; it doubles as
	// the engine's notifier.
	var notifier board.Notifier
	var telegramBot *bot.Bot
	if botToken != "" {
		log.Println("Initializing Telegram bot...")
		telegramBot, err = bot.NewBot(botToken, db, translator)
		if err != nil {
			log.Printf("Warning: Failed to initialize Telegram bot: %v", err)
			log.Println("Continuing without Telegram bot...")
		} else {
			notifier = telegramBot
		}
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, Telegram bot will not be started")
	}

	// Initialize the board engine
	log.Println("Initializing board engine...")
	engine := board.NewEngine(db, catalog, db, notifier, board.Options{})

	// Initialize the web server
	server, err := web.NewServer(engine, db, sessionSecret)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start background maintenance (weekly auto-selection, fortnightly
	// boss resets) in place of an external cron.
	go engine.StartMaintenanceWorker(ctx)

	if telegramBot != nil {
		go telegramBot.Start()
	}

	// Setup HTTP server with graceful shutdown
	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting HTTP server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until signal is received
	sig := <-quit
	log.Printf("Received signal %v, initiating graceful shutdown...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if telegramBot != nil {
		telegramBot.Stop()
	}

	log.Println("Shutdown complete")
}
