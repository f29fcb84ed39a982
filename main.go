package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/wojtekolesinski/battleships-solo/app"
	"github.com/wojtekolesinski/battleships-solo/bot"
	"github.com/wojtekolesinski/battleships-solo/config"
	"github.com/wojtekolesinski/battleships-solo/game"
	"github.com/wojtekolesinski/battleships-solo/models"
	"github.com/wojtekolesinski/battleships-solo/random"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		log.Fatal("main [config]", "err", err)
	}

	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "computer targeting strategy (hunt|random)")
	flag.DurationVar(&cfg.CPUDelay, "cpu-delay", cfg.CPUDelay, "delay before the computer fires")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 seeds from the clock")
	flag.BoolVar(&cfg.Reveal, "reveal", cfg.Reveal, "start with the enemy fleet visible")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file, the terminal is taken by the game")
	menu := flag.Bool("menu", false, "choose the computer strategy before the game starts")
	flag.Parse()

	if *menu {
		cfg.Strategy, err = app.ChooseStrategy(os.Stdin, os.Stdout, bot.Kinds())
		if err != nil {
			log.Fatal("main [menu]", "err", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("main [config]", "err", err)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, models.ErrInvariantViolation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("main.run: %w", err)
	}
	defer logFile.Close()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("main.run: %w", err)
	}
	logger := log.NewWithOptions(logFile, log.Options{
		Level:           level,
		Prefix:          "battleships",
		ReportTimestamp: true,
	})
	log.SetDefault(logger)

	g, err := game.New(
		game.WithStrategy(cfg.Strategy),
		game.WithRandom(random.New(cfg.Seed)),
		game.WithComputerDelay(cfg.CPUDelay),
		game.WithReveal(cfg.Reveal),
		game.WithLogger(logger.With("component", "game")),
	)
	if err != nil {
		return fmt.Errorf("main.run: %w", err)
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("main [run]", "strategy", cfg.Strategy, "seed", cfg.Seed, "cpuDelay", cfg.CPUDelay)
	a := app.New(g, logger.With("component", "app"))
	return a.Run(ctx)
}
