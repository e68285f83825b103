package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/jadxdctl/internal/config"
	"github.com/danmuck/jadxdctl/internal/logging"
	"github.com/danmuck/jadxdctl/jadxd"
)

func main() {
	logging.ConfigureRuntime()

	configPath := flag.String("config", "", "client config file (toml)")
	walkthroughPath := flag.String("walkthrough", "", "walkthrough config file (toml)")
	baseURL := flag.String("base-url", "", "jadxd endpoint (overrides config)")
	artifact := flag.String("artifact", "", "artifact path to load (overrides walkthrough config)")
	flag.Parse()

	if err := run(*configPath, *walkthroughPath, *baseURL, *artifact); err != nil {
		fmt.Fprintf(os.Stderr, "jadxdctl: %v\n", err)
		os.Exit(1)
	}
}

// run walks the protocol end to end against one daemon: load, browse the
// first class, chase xrefs, search strings, dump the manifest and resources,
// then close.
func run(configPath, walkthroughPath, baseURL, artifact string) error {
	cfg := jadxd.DefaultConfig()
	var settings *jadxd.DecompileSettings
	if configPath != "" {
		loaded, err := config.LoadClientConfig(configPath)
		if err != nil {
			return err
		}
		cfg.BaseURL = loaded.BaseURL
		cfg.Timeout = loaded.Timeout()
		s := loaded.ClientSettings()
		settings = &s
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.Logger = &log.Logger

	walkthrough := defaultWalkthroughConfig()
	if walkthroughPath != "" {
		loaded, err := loadWalkthroughConfig(walkthroughPath)
		if err != nil {
			return err
		}
		walkthrough = loaded
	}
	if artifact != "" {
		walkthrough.Artifact = artifact
	}

	client, err := jadxd.NewClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()
	ctx := context.Background()

	health, err := client.Health(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("status", health.Status).Str("backend", health.Backend).
		Str("version", health.Version).Msg("daemon health")

	sess, loaded, err := jadxd.Open(ctx, client, walkthrough.Artifact, settings)
	if err != nil {
		return err
	}
	log.Info().Str("session", sess.ID()).Str("hash", loaded.ArtifactHash).
		Int("classes", loaded.ClassCount).Msg("artifact loaded")
	for _, w := range loaded.Warnings {
		log.Warn().Str("session", sess.ID()).Msg(w)
	}

	types, err := sess.ListTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range types.Types {
		fmt.Printf("%-10s %s.%s\n", t.Kind, t.Package, t.Name)
	}
	if len(types.Types) == 0 {
		return sessClose(ctx, sess)
	}
	first := types.Types[0]

	methods, err := sess.ListMethodsDetail(ctx, first.ID)
	if err != nil {
		return err
	}
	for _, m := range methods.Methods {
		fmt.Printf("  %s%v %s\n", m.Name, m.Arguments, m.ReturnType)
	}

	if len(methods.Methods) > 0 {
		mid := methods.Methods[0].ID
		dec, err := sess.DecompileMethod(ctx, mid)
		if err != nil {
			return err
		}
		if walkthrough.DumpSource && dec.Java != nil {
			fmt.Println(*dec.Java)
		}
		for _, w := range dec.Warnings {
			log.Warn().Str("method", mid).Msg(w)
		}

		to, err := sess.XrefsTo(ctx, mid)
		if err != nil {
			return err
		}
		from, err := sess.XrefsFrom(ctx, mid)
		if err != nil {
			return err
		}
		fmt.Printf("xrefs: %d callers, %d callees\n", len(to.Refs), len(from.Refs))
	}

	found, err := sess.SearchStrings(ctx, walkthrough.StringQuery, walkthrough.QueryRegex, walkthrough.SearchLimit)
	if err != nil {
		return err
	}
	fmt.Printf("strings matching %q: %d total\n", found.Query, found.TotalCount)
	for _, m := range found.Matches {
		fmt.Printf("  %q (%d locations)\n", m.Value, len(m.Locations))
	}

	// Not every input format carries a manifest; missing is fine.
	manifest, err := sess.GetManifest(ctx)
	switch {
	case err == nil:
		if walkthrough.DumpSource {
			fmt.Println(manifest.Text)
		}
	case jadxd.IsNotFoundError(err):
		log.Info().Msg("artifact carries no manifest")
	default:
		return err
	}

	resources, err := sess.ListResources(ctx)
	if err != nil {
		return err
	}
	for _, r := range resources.Resources {
		size := int64(-1)
		if r.Size != nil {
			size = *r.Size
		}
		fmt.Printf("%-8s %8d %s\n", r.Type, size, r.Name)
	}

	return sessClose(ctx, sess)
}

func sessClose(ctx context.Context, sess *jadxd.Session) error {
	res, err := sess.Close(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("session", res.SessionID).Str("status", res.Status).Msg("session closed")
	return nil
}
