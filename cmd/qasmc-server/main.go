// Command qasmc-server runs the compile endpoint as an HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/qasmc/internal/app"
	"github.com/kegliz/qasmc/internal/config"
)

var version = "dev"

func main() {
	var (
		port       = flag.Int("port", 8080, "port to listen on")
		localOnly  = flag.Bool("local-only", false, "bind to 127.0.0.1 instead of all interfaces")
		configPath = flag.String("config", "", "path to qasmc.yaml (optional)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmc-server: loading config: %v\n", err)
		os.Exit(1)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		fmt.Fprintf(os.Stderr, "qasmc-server: %v\n", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(*port, *localOnly) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "qasmc-server: %v\n", err)
			os.Exit(1)
		}
	case <-sig:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "qasmc-server: shutdown: %v\n", err)
			os.Exit(1)
		}
	}
}
