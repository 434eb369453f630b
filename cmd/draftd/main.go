// Command draftd serves drawings over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/server"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "settings file (default $DRAFT_CONFIG or draft.yaml)")
		addr    = flag.String("addr", "", "listen address (overrides settings)")
	)
	flag.Parse()

	settings, err := config.LoadSettings(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		settings.Server.Addr = *addr
	}
	draft.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, settings); err != nil {
		log.Fatal(err)
	}
}
