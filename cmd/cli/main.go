package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pt428/recipes/internal/buildinfo"
	"github.com/pt428/recipes/internal/client/cli"
	"github.com/pt428/recipes/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
