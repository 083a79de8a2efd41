package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/trongate/trongate/config"
	"github.com/trongate/trongate/proxy"
	"github.com/trongate/trongate/server"
	"github.com/trongate/trongate/upstream"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cmd := &cli.Command{
		Name:  "trongate",
		Usage: "JSON-RPC gateway translating Ethereum tooling calls for a TRON backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./trongate.yaml",
				Usage:   "path to the YAML config file",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on (overrides config)",
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Aliases: []string{"d"},
				Usage:   "destination base URL to forward requests to (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "zerolog level (overrides config)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, afero.NewOsFs(), cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Msgf("failed to start trongate: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, fs afero.Fs, cmd *cli.Command) error {
	cfg, err := loadConfig(fs, cmd)
	if err != nil {
		return err
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		log.Warn().Msgf("invalid log level '%s', defaulting to 'info': %s", cfg.LogLevel, err)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(level)
	}

	parsedUrl, err := url.Parse(cfg.Upstream.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid upstream endpoint '%s': %w", cfg.Upstream.Endpoint, err)
	}

	log.Info().Msgf("starting proxy server on port %s forwarding to %s", cfg.Server.HttpPort, cfg.Upstream.Endpoint)

	logger := log.With().Str("component", "proxy").Logger()
	client := upstream.NewHttpJsonRpcClient(&logger, parsedUrl)
	core := proxy.NewProxyCore(&logger, client)
	srv := server.NewHttpServer(&cfg.Server, core)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		msrv := server.NewMetricsServer(cfg.Metrics)
		go func() {
			log.Info().Msgf("starting metrics server on %s", msrv.Addr)
			if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case recvSig := <-sig:
		log.Warn().Msgf("caught signal: %v", recvSig)
	case <-ctx.Done():
	}

	return srv.Shutdown()
}

func loadConfig(fs afero.Fs, cmd *cli.Command) (*config.Config, error) {
	cfg := &config.Config{}

	configPath := cmd.String("config")
	if _, err := fs.Stat(configPath); err == nil {
		log.Info().Msgf("loading configuration from %s", configPath)
		cfg, err = config.LoadConfig(fs, configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	} else if cmd.IsSet("config") {
		// An explicitly requested config file must exist; the default path is optional
		// since port and endpoint can come from flags.
		return nil, fmt.Errorf("config file '%s' does not exist", configPath)
	}

	if port := cmd.String("port"); port != "" {
		cfg.Server.HttpPort = port
	}
	if endpoint := cmd.String("endpoint"); endpoint != "" {
		cfg.Upstream.Endpoint = endpoint
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
