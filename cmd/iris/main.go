package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/drakos74/free-iris/client/iris"
	"github.com/drakos74/free-iris/infra/config"
	"github.com/drakos74/free-iris/internal/form"
	formhttp "github.com/drakos74/free-iris/internal/form/http"
	"github.com/drakos74/free-iris/internal/metrics"
	"github.com/drakos74/free-iris/internal/server"
	iristime "github.com/drakos74/free-iris/internal/time"
	"github.com/drakos74/free-iris/user"
	"github.com/drakos74/free-iris/user/local"
	"github.com/drakos74/free-iris/user/telegram"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	console := flag.Bool("console", false, "read commands from stdin instead of serving the form")
	profile := flag.String("config", "", "name of the config file under infra/config, e.g. 'staging'")
	flag.Parse()

	config.LoadEnv(".env")
	var cfg config.Iris
	if *profile != "" {
		cfg = config.MustLoadIris(*profile)
	} else {
		var err error
		cfg, err = config.LoadIris()
		if err != nil {
			log.Fatalf("error loading config: %s", err.Error())
		}
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := iris.NewClient(cfg.BaseURL).Timeout(cfg.Timeout.Duration)
	registry := form.NewRegistry(client)
	defer registry.Close()

	interpreter := user.NewInterpreter(cfg.Telegram.Prefix, registry)

	if *console {
		if err := local.NewUser(interpreter, os.Stdin, os.Stdout).Run(ctx); err != nil {
			log.Fatalf("error reading commands: %s", err.Error())
		}
		return
	}

	if cfg.Telegram.Enabled() {
		bot, err := telegram.NewBot(cfg.Telegram.Token, interpreter)
		if err != nil {
			log.Fatalf("error creating user: %s", err.Error())
		}
		if err := bot.Run(ctx); err != nil {
			log.Fatalf("error running user: %s", err.Error())
		}
	}

	ttl := cfg.SessionTTL.Duration
	if ttl > 0 {
		iristime.Execute(ctx.Done(), ttl/4, func() error {
			registry.Sweep(ttl)
			return nil
		})
	}

	srv := server.NewServer("iris", cfg.Port).
		Add(server.Live()).
		Add(formhttp.Routes(registry)...).
		Mount("/metrics", metrics.Handler())
	if cfg.Proxy {
		proxy, err := server.Proxy("/api/", cfg.BaseURL)
		if err != nil {
			log.Fatalf("error creating proxy: %s", err.Error())
		}
		srv.Mount("/api/", proxy)
	}
	if level <= zerolog.DebugLevel {
		srv.Debug()
	}

	zlog.Info().
		Str("api", cfg.BaseURL).
		Bool("proxy", cfg.Proxy).
		Float64("timeout", cfg.Timeout.Seconds()).
		Msg("starting iris form")

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("error running server: %s", err.Error())
	}
}
