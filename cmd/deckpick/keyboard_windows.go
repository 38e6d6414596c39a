//go:build windows
// +build windows

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/suaudpierre/deckpick/internal/browser"
	"github.com/suaudpierre/deckpick/internal/logger"
)

// listenForKeyboard listens for keyboard input on Windows.
// Simple line-based reading; terminal manipulation is more complex there.
func listenForKeyboard(deckURL string, appLog *logger.SlogLogger) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		input := strings.ToLower(string(buf[0]))
		switch input {
		case "a":
			fmt.Printf("%sOpening deck page in browser...%s\n", cyan, reset)
			if err := browser.Open(deckURL); err != nil {
				fmt.Printf("%sError opening browser: %v%s\n", red, err, reset)
			}
		case "h":
			if appLog.IsHTTPLoggingEnabled() {
				appLog.DisableHTTPLogging()
				fmt.Printf("%sHTTP logging disabled%s\n", yellow, reset)
			} else {
				appLog.EnableHTTPLogging()
				fmt.Printf("%sHTTP logging enabled%s\n", green, reset)
			}
		case "l":
			cycleLogLevel(appLog)
		case "q":
			fmt.Printf("%sShutting down server...%s\n", yellow, reset)
			os.Exit(0)
		case "?":
			printKeyboardHelp()
		}
	}
}
