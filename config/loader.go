package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides, eg:
// PPE_IOU_THRESHOLD
const envPrefix = "PPE_"

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables.  Order of precedence (low -> high):
//  1. defaults (Default())
//  2. YAML file at path, or at $PPE_CONFIG when path is empty
//  3. environment variables with the PPE_ prefix
//
// The result is validated before being returned.
func Load(path string) (*Config, error) {

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// map env keys like PPE_IOU_THRESHOLD -> iou_threshold, preserving
	// underscores to match the koanf tags on the struct
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})

	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	cfg := Default()

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
