package main

import (
	"context"
	"log"
	"os"

	"github.com/scanfact/scanfact/internal/buildinfo"
	"github.com/scanfact/scanfact/internal/client/cli"
	"github.com/scanfact/scanfact/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
