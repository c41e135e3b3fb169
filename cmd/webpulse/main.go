package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"webpulse/internal/config"
	"webpulse/internal/engine"
	"webpulse/internal/simmetrics"
	"webpulse/internal/sink"
)

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

func main() {
	configPath := flag.String("config", "webpulse.yaml", "path to the YAML configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, config.ErrNotFound):
		zap.L().Warn("config file not found, using defaults and environment",
			zap.String("path", *configPath))
	case err != nil:
		zap.L().Fatal(err.Error())
	}

	eng, err := engine.New(cfg.Engine(), os.Stdout)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	metrics := simmetrics.NewMetrics()
	if err := metrics.CollectEngine(eng); err != nil {
		zap.L().Fatal(err.Error())
	}

	http.Handle("/metrics", metrics.Handler())
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.MetricsPort), nil); err != nil {
			zap.L().Fatal(err.Error())
		}
	}()

	if sinkCfg, enabled := cfg.Sink(); enabled {
		s, err := sink.New(ctx, sinkCfg)
		if err != nil {
			zap.L().Fatal(err.Error())
		}
		defer func() {
			if err := s.Close(); err != nil {
				zap.L().Error(err.Error())
			}
		}()
		eng.OnHit(s.Record)
	}

	eng.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	eng.Stop()
	eng.Wait()

	stats := eng.Stats()
	zap.L().Info("engine stopped",
		zap.Int64("hits", stats.Hits),
		zap.Int64("failures", stats.Failures),
		zap.Int("subnets", stats.Subnets),
	)
}
