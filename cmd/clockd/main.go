package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/nholloway/clockface/clock"
	"github.com/nholloway/clockface/config"
	"github.com/nholloway/clockface/logger"
	"github.com/nholloway/clockface/sampler"
	"github.com/nholloway/clockface/webui"
)

var cli struct {
	Config   []string `short:"c" default:"config/config.yaml,config/local.yaml" help:"YAML config files, merged in order. Missing files are skipped."`
	Addr     string   `help:"Override the renderer stream listen address."`
	Discrete bool     `help:"Start in discrete (whole-second) display mode."`
	NTP      bool     `help:"Use an NTP-corrected time source."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("clockd"),
		kong.Description("Headless clock engine streaming display frames to renderers."),
	)

	params, err := build()
	if err != nil {
		log.Fatal(err)
	}

	if err = run(params); err != nil {
		log.Fatal(err)
	}
}

type runParams struct {
	Config   *config.AppConfig
	Logger   logger.Logger
	NTPClock *clock.NTPClock
	Sampler  *sampler.Sampler
	WebUI    *webui.Server
}

func build() (runParams, error) {
	cfg, err := config.LoadWithDefaults(cli.Config...)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return runParams{}, fmt.Errorf("load config: %w", err)
	}

	if cli.Addr != "" {
		cfg.WebUI.Addr = cli.Addr
	}
	if cli.Discrete {
		cfg.Sampler.Discrete = true
	}
	if cli.NTP {
		cfg.Clock.NTP = true
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return runParams{}, fmt.Errorf("initialize logger: %w", err)
	}

	var (
		src      clock.Clock = clock.System()
		ntpClock *clock.NTPClock
	)
	if cfg.Clock.NTP {
		ntpClock = clock.NewNTP(clock.Params{
			Config: cfg.Clock.Sync,
			Logger: appLogger,
		})
		src = ntpClock
	}

	smp := sampler.New(sampler.Params{
		Config: cfg.Sampler,
		Clock:  src,
		Logger: appLogger,
	})

	ui, err := webui.New(webui.Params{
		Config:  cfg.WebUI,
		Sampler: smp,
		Face:    cfg.Face.Face(),
		Logger:  appLogger,
	})
	if err != nil {
		return runParams{}, fmt.Errorf("create webui: %w", err)
	}

	return runParams{
		Config:   cfg,
		Logger:   appLogger,
		NTPClock: ntpClock,
		Sampler:  smp,
		WebUI:    ui,
	}, nil
}

// run starts all components and runs the daemon until shutdown.
func run(p runParams) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer p.Logger.Sync()

	if p.NTPClock != nil {
		if err := p.NTPClock.Start(ctx); err != nil {
			return fmt.Errorf("start ntp clock: %w", err)
		}
		defer p.NTPClock.Stop()
	}

	if err := p.Sampler.Start(ctx); err != nil {
		return fmt.Errorf("start sampler: %w", err)
	}
	defer p.Sampler.Stop()

	if err := p.WebUI.Start(ctx); err != nil {
		return fmt.Errorf("start webui: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := p.WebUI.Stop(); err != nil {
		p.Logger.ErrorW("stop webui", "error", err)
	}

	return nil
}
