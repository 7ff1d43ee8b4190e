package main

import (
	"log"
	_ "time/tzdata" // FORM_TIMEZONE must resolve in minimal images

	"github.com/yasohm/formulaire/internal/intake/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
