package main

import (
	"context"
	"log"
	"os"

	"github.com/unbox-app/unbox/internal/buildinfo"
	"github.com/unbox-app/unbox/internal/client/api"
	"github.com/unbox-app/unbox/internal/client/cli"
	"github.com/unbox-app/unbox/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	if cfg.CardID == "" {
		log.Fatal("no card id given, use -i <card id>")
	}

	client := api.NewClient(cfg.ServerBaseURL)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	card, err := client.GetCard(fetchCtx, cfg.CardID)
	cancel()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(card, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
