package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/k3v1n-eu/unifi-respondd/internal/config"
	"github.com/k3v1n-eu/unifi-respondd/internal/respondd"
	"github.com/k3v1n-eu/unifi-respondd/internal/unifi"
)

func main() {
	fs := flag.NewFlagSet("unifi-respondd", flag.ExitOnError)
	configPath := fs.String("config", "unifi-respondd.yaml", "path to the YAML config file")
	verbose := fs.Bool("verbose", false, "log every request and reply")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := config.Validate(cfg); err != nil {
		fatal(err)
	}
	if *verbose {
		cfg.Respondd.Verbose = true
	}

	client, err := unifi.NewClient(*cfg.Controller)
	if err != nil {
		fatal(err)
	}

	responder := respondd.New(*cfg.Respondd, client)
	if err := responder.Listen(); err != nil {
		fatal(err)
	}
	log.Printf("listening on %s port %d (interface %s)",
		cfg.Respondd.MulticastAddress, cfg.Respondd.MulticastPort, cfg.Respondd.Interface)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := responder.Serve(ctx); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
