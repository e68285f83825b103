package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "client":
		return clientTemplate, nil
	case "mock":
		return mockTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const clientTemplate = `base_url = "http://127.0.0.1:8085"
timeout_seconds = 300

[settings]
deobfuscation = false
inline_methods = true
show_inconsistent_code = true
`

const mockTemplate = `addr = ":8085"
cors_origins = ["http://localhost:3000"]

[[fixtures]]
path = "sample.apk"
file = "fixtures/sample.yaml"
`
