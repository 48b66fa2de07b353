package main

import (
	"log"

	"github.com/lyzrex/lythrion-status/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ lythrion-status failed to start: %v", err)
	}
}
