package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/menumanager/internal/app"
	"github.com/JonMunkholm/menumanager/internal/config"
	"github.com/JonMunkholm/menumanager/internal/logging"
	"github.com/JonMunkholm/menumanager/internal/tui"
)

// logFile receives log output while the terminal is owned by the UI.
const logFile = "menumanager-tui.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the .env files named on the command line, or the
// default .env and the environment when none are given.
func loadConfig(args []string) (*config.Config, error) {
	if len(args) > 0 {
		return config.LoadFiles(args...)
	}
	_ = godotenv.Overload()
	return config.Load()
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	closer, err := logging.SetupFile(logFile, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer closer.Close()

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(tui.New(application.Service), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
