package main

import (
	"os"

	"github.com/avstrong/lodgix/internal/app"
	"github.com/avstrong/lodgix/internal/config"
	"github.com/avstrong/lodgix/internal/logger"
)

func main() {
	var exitCode int

	conf, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).LogErrorf("Failed to load config: %v", err.Error()) //nolint:exhaustruct
		os.Exit(1)
	}

	l := logger.New(logger.Config{Level: conf.Log.Level, Format: conf.Log.Format}) //nolint:exhaustruct

	if err := app.Run(l, conf); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
