package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/suaudpierre/deckpick/internal/app"
	"github.com/suaudpierre/deckpick/internal/auth"
	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/web"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	version = "dev"
)

// showBanner prints the DeckPick logo
func showBanner() {
	logo := []string{
		`  ____            _    ____  _      _    `,
		` |  _ \  ___  ___| | _|  _ \(_) ___| | __`,
		` | | | |/ _ \/ __| |/ / |_) | |/ __| |/ /`,
		` | |_| |  __/ (__|   <|  __/| | (__|   < `,
		` |____/ \___|\___|_|\_\_|   |_|\___|_|\_\`,
	}

	fmt.Println()
	for _, line := range logo {
		fmt.Printf("%s%s%s\n", cyan, line, reset)
	}
	fmt.Println()
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	case "ERROR":
		next = "debug"
	default:
		next = "info"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Printf("%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %sa%s      - Open deck page in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

func main() {
	port := flag.Int("port", 8082, "HTTP server port")
	dbPath := flag.String("db", "deck.db", "SQLite database path")
	adminPw := flag.String("adminpw", "", "Admin password (auto-generated if not set)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `DeckPick - Animated Random Card Picker

Usage:
  deckpick [options]

Options:
  -port int      HTTP server port (default 8082)
  -db string     SQLite database path (default "deck.db")
  -adminpw str   Admin password (auto-generated if not set)
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -nokeyboard    Disable keyboard shortcuts
  -version       Show version and exit
  -help          Show this help message

Keyboard Shortcuts (when enabled):
  a              Open deck page in browser
  h              Toggle HTTP request logging
  l              Cycle log level (debug → info → warn → error)
  q              Quit server
  ?              Show keyboard help

Examples:
  deckpick                         # Run on port 8082 with deck.db
  deckpick -port 8080              # Run on port 8080
  deckpick -db /data/deck.db       # Use custom database path
  deckpick -adminpw secret123      # Use specific admin password

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("deckpick %s\n", version)
		os.Exit(0)
	}

	showBanner()

	// Setup admin authentication
	password := *adminPw
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.New(password)

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	a, err := app.New(appLog, *dbPath, web.GetTemplatesFS(), web.GetStaticFS(), adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)
	appLog.Info("Admin password", "password", password)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	deckURL := fmt.Sprintf("http://localhost:%d/", *port)

	if !*noKeyboard {
		printKeyboardHelp()
		go listenForKeyboard(deckURL, appLog)
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}
