package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// walkthroughConfig steers the demo: which artifact to load and what to look
// for once it is open. Transport settings live in the client config file.
type walkthroughConfig struct {
	Artifact    string
	StringQuery string
	QueryRegex  bool
	SearchLimit int
	DumpSource  bool
}

func defaultWalkthroughConfig() walkthroughConfig {
	return walkthroughConfig{
		Artifact:    "/artifacts/sample-app.apk",
		StringQuery: "http",
		SearchLimit: 20,
		DumpSource:  true,
	}
}

type walkthroughFile struct {
	Artifact    string `toml:"artifact"`
	StringQuery string `toml:"string_query"`
	QueryRegex  bool   `toml:"query_regex"`
	SearchLimit int    `toml:"search_limit"`
	DumpSource  bool   `toml:"dump_source"`
}

func loadWalkthroughConfig(path string) (walkthroughConfig, error) {
	cfg := defaultWalkthroughConfig()

	var raw walkthroughFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return walkthroughConfig{}, fmt.Errorf("load walkthrough config: %w", err)
	}

	if meta.IsDefined("artifact") {
		if v := strings.TrimSpace(raw.Artifact); v != "" {
			cfg.Artifact = v
		}
	}

	if meta.IsDefined("string_query") {
		if v := strings.TrimSpace(raw.StringQuery); v != "" {
			cfg.StringQuery = v
		}
	}

	if meta.IsDefined("query_regex") {
		cfg.QueryRegex = raw.QueryRegex
	}

	if meta.IsDefined("search_limit") && raw.SearchLimit > 0 {
		cfg.SearchLimit = raw.SearchLimit
	}

	if meta.IsDefined("dump_source") {
		cfg.DumpSource = raw.DumpSource
	}

	return cfg, nil
}
