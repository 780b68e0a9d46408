package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"barrage/server/internal/app"
)

func main() {
	var configPath string
	var clientDir string
	flag.StringVar(&configPath, "config", "", "path to a JSON config file")
	flag.StringVar(&clientDir, "client", "", "directory of static client assets to serve")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Options{ConfigPath: configPath, ClientDir: clientDir}); err != nil {
		log.Fatalf("%v", err)
	}
}
