package main

import (
	"kazicare_backend/internal/app"
	"kazicare_backend/internal/logger"
)

func main() {
	application, err := app.New()
	if err != nil {
		logger.Fatal("failed to start application", "error", err)
	}

	if err := application.Run(); err != nil {
		logger.Fatal("server error", "error", err)
	}
}
