package main

import (
	"context"
	"log"
	"os"

	"github.com/youiz/dri-portal/internal/buildinfo"
	"github.com/youiz/dri-portal/internal/cli"
	"github.com/youiz/dri-portal/internal/config"
	"github.com/youiz/dri-portal/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logging.NewJSON(os.Stderr))

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
