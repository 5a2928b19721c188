package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/rollup/config"
	"github.com/kbukum/rollup/logger"
	"github.com/kbukum/rollup/observability"
	"github.com/kbukum/rollup/rollup"
	"github.com/kbukum/rollup/stream"
	"github.com/kbukum/rollup/version"
)

const serviceName = "rollup"

type appConfig struct {
	Base          config.BaseConfig   `mapstructure:"base"`
	Input         string              `mapstructure:"input"`
	Logging       logger.Config       `mapstructure:"logging"`
	Rollup        rollup.Config       `mapstructure:"rollup"`
	Observability observabilityConfig `mapstructure:"observability"`
}

type observabilityConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func main() {
	var cfg appConfig
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Base.Name == "" {
		cfg.Base.Name = serviceName
	}
	cfg.Base.ApplyDefaults()
	if err := cfg.Base.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Base.Debug && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}
	logger.Init(cfg.Logging)
	logger.Info("starting", logger.Fields(
		"version", version.String(),
		"environment", cfg.Base.Environment,
	))

	if len(os.Args) > 1 {
		cfg.Input = os.Args[1]
	}
	if cfg.Input == "" {
		logger.Fatal("no input file given (set input in config.yml or pass it as the first argument)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.Enabled {
		shutdown := initObservability(ctx, cfg.Observability, string(cfg.Base.Environment))
		defer shutdown()
	}

	start := time.Now()
	table, err := rollup.Run(ctx, stream.Open(cfg.Input), cfg.Rollup)
	if err != nil {
		logger.Fatal("aggregation failed", logger.ErrorFields("run", err))
	}

	for _, key := range table.Keys() {
		s := table[key]
		fmt.Printf("%s=%.1f/%.1f/%.1f\n", key, s.Min, s.Mean(), s.Max)
	}

	logger.Info("execution complete", logger.Fields(
		"input", cfg.Input,
		logger.FieldKeys, len(table),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
}

func initObservability(ctx context.Context, cfg observabilityConfig, environment string) func() {
	meterCfg := observability.DefaultMeterConfig(serviceName)
	tracerCfg := observability.DefaultTracerConfig(serviceName)
	if cfg.Endpoint != "" {
		meterCfg.Endpoint = cfg.Endpoint
		tracerCfg.Endpoint = cfg.Endpoint
	}
	if environment != "" {
		meterCfg.Environment = environment
		tracerCfg.Environment = environment
	}

	mp, err := observability.InitMeter(ctx, &meterCfg)
	if err != nil {
		logger.Warn("metrics export disabled", logger.ErrorFields("init_meter", err))
	}
	tp, err := observability.InitTracer(ctx, tracerCfg)
	if err != nil {
		logger.Warn("trace export disabled", logger.ErrorFields("init_tracer", err))
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if mp != nil {
			_ = mp.Shutdown(shutdownCtx)
		}
		if tp != nil {
			_ = tp.Shutdown(shutdownCtx)
		}
	}
}
