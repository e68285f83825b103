package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/jadxdctl/internal/config"
	"github.com/danmuck/jadxdctl/internal/mockd"
	"github.com/danmuck/jadxdctl/internal/observability"
)

func main() {
	observability.InitLogger("mockd")

	configPath := flag.String("config", "", "mock config file (toml)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "mockd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg := config.MockConfig{Addr: ":8085"}
	if configPath != "" {
		loaded, err := config.LoadMockConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Addr = addr
	}

	fixtures := map[string]*mockd.Fixture{}
	for _, ref := range cfg.Fixtures {
		fx, err := mockd.LoadFixtureFile(ref.File)
		if err != nil {
			return err
		}
		fixtures[ref.Path] = fx
		log.Info().Str("path", ref.Path).Str("fixture", fx.Name).Msg("fixture loaded")
	}
	if len(fixtures) == 0 {
		fx, err := mockd.SampleFixture()
		if err != nil {
			return err
		}
		fixtures[mockd.SampleFixturePath] = fx
		log.Info().Str("path", mockd.SampleFixturePath).Msg("no fixtures configured; serving embedded sample")
	}

	srv, err := mockd.New(mockd.Config{
		Addr:        cfg.Addr,
		CorsOrigins: cfg.CorsOrigins,
		Fixtures:    fixtures,
	})
	if err != nil {
		return err
	}
	log.Info().Str("addr", cfg.Addr).Int("fixtures", len(fixtures)).Msg("mockd listening")
	return srv.Serve()
}
