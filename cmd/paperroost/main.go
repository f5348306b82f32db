package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RomaniOSDev/17PaperRoost/internal/buildinfo"
	"github.com/RomaniOSDev/17PaperRoost/internal/cli"
	"github.com/RomaniOSDev/17PaperRoost/internal/config"
	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
