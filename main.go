package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"magnecruit-client/api"
	"magnecruit-client/cache"
	"magnecruit-client/core"
	"magnecruit-client/socket"
	"magnecruit-client/store"
	"magnecruit-client/ui"
	"magnecruit-client/utils"
)

var (
	version = "0.1.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Magnecruit Client v%s\n", version)
		os.Exit(0)
	}

	// A .env next to the binary can override server addresses
	_ = godotenv.Load()

	// Initialize logger
	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting Magnecruit Client v%s", version)

	// Load or create default configuration
	var config *utils.Config
	var actualConfigPath string
	if *configPath != "" {
		actualConfigPath = *configPath
		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	} else {
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
		logger.Info("Using config file: %s", actualConfigPath)

		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}

	// Open the local mirror; the app still works without it
	mirror, err := cache.Open(config.Data.CachePath)
	if err != nil {
		logger.Warn("Cache unavailable, continuing without it: %v", err)
		mirror = nil
	} else {
		defer mirror.Close()
		logger.Info("Cache opened: %s", config.Data.CachePath)
	}

	backend, err := api.NewClient(config.Server.APIBaseURL, logger)
	if err != nil {
		logger.Error("Failed to create API client: %v", err)
		os.Exit(1)
	}

	events := socket.NewClient(config.Server.SocketURL, logger)
	chat := store.NewChat()
	workspace := store.NewWorkspace()
	controller := core.NewController(backend, events, chat, workspace, mirror, logger)

	app := ui.NewApp(config, actualConfigPath, backend, controller, chat, workspace, logger)

	logger.Info("Application started")
	app.Run()
	logger.Info("Application stopped")
}
