package main

import (
	"context"
	"log"

	server "github.com/scanfact/scanfact/internal/server"
	"github.com/scanfact/scanfact/internal/server/config"
)

func main() {

	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
